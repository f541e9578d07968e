// Package excel writes the blank concierge workbook that editors fill in.
package excel

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"humano.dev/conserje"
)

var columnWidths = map[string]float64{
	"id":                   14,
	"nombre_publico":       30,
	"desc_factual":         50,
	"desc_experiencial":    50,
	"descripcion_practica": 70,
	"regla_clave":          24,
	"link_ubicacion_mapa":  40,
	"redirigir":            40,
}

const defaultColumnWidth = 22

// ConserjeTemplateXLSX returns an empty concierge workbook with the
// canonical header row on every sheet the converter reads.
func ConserjeTemplateXLSX() ([]byte, error) {
	return TemplateXLSX(conserje.Sheets)
}

// TemplateXLSX returns a workbook with one sheet per entry, each holding
// only its header row.
func TemplateXLSX(sheets []conserje.Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, errors.New("no sheets")
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "humano.dev/conserje",
	})

	first := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	for i, s := range sheets {
		if i == 0 {
			if err := xlsx.SetSheetName(first, s.Name); err != nil {
				return nil, err
			}
		} else if _, err := xlsx.NewSheet(s.Name); err != nil {
			return nil, err
		}
		if err := writeHeader(xlsx, s.Name, s.Columns); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
	}
	xlsx.SetActiveSheet(0)

	// Increase size of window
	for i := range xlsx.WorkBook.BookViews.WorkBookView {
		xlsx.WorkBook.BookViews.WorkBookView[i].WindowWidth = 25000
		xlsx.WorkBook.BookViews.WorkBookView[i].WindowHeight = 25000 / 3 * 2
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(xlsx *excelize.File, sheet string, columns []string) error {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	if err := xlsx.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}

	lists := make(map[string]bool)
	for _, f := range conserje.ArrayFields {
		lists[f] = true
	}
	times := make(map[string]bool)
	for _, f := range conserje.TimeFields {
		times[f] = true
	}

	for i, c := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		width, ok := columnWidths[c]
		if !ok {
			width = defaultColumnWidth
		}
		_ = xlsx.SetColWidth(sheet, col, col, width)

		style := mergeStyles(defaultStyle(), fontBold(), verticalCenter(), thinBorder("bottom"))
		switch {
		case lists[c]:
			style = mergeStyles(style, highlight())
		case times[c]:
			style = mergeStyles(style, muted())
		}
		id, err := xlsx.NewStyle(style)
		if err != nil {
			return err
		}
		_ = xlsx.SetCellStyle(sheet, col+"1", col+"1", id)
	}
	_ = xlsx.SetRowHeight(sheet, 1, 20)

	return xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
