package ooxml

import (
	"strconv"
	"strings"
)

// xlsxSST maps the sst element of xl/sharedStrings.xml.
type xlsxSST struct {
	SI []xlsxSI `xml:"si"`
}

// xlsxSI maps an si (or inline is) element: either plain text in t or a
// sequence of rich text runs. Phonetic runs (rPh) are not part of the value.
type xlsxSI struct {
	T *string `xml:"t"`
	R []xlsxR `xml:"r"`
}

type xlsxR struct {
	T string `xml:"t"`
}

func (si *xlsxSI) text() string {
	var b strings.Builder
	if si.T != nil {
		b.WriteString(*si.T)
	}
	for _, r := range si.R {
		b.WriteString(r.T)
	}
	return b.String()
}

type xlsxWorkbook struct {
	Sheets []xlsxSheet `xml:"sheets>sheet"`
}

// xlsxSheet maps a sheet element. The relationship id lives in the
// officeDocument relationships namespace, whose URI differs between
// transitional and strict documents, so it is matched on local name only.
type xlsxSheet struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"`
}

type xlsxRelationships struct {
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xlsxWorksheet struct {
	Rows []xlsxRow `xml:"sheetData>row"`
}

type xlsxRow struct {
	Cells []xlsxC `xml:"c"`
}

type xlsxC struct {
	R  string  `xml:"r,attr"`
	T  string  `xml:"t,attr"`
	V  *string `xml:"v"`
	IS *xlsxSI `xml:"is"`
}

// text resolves the cell's value: a shared string index, then a literal
// value, then an inline string.
func (c *xlsxC) text(shared []string) string {
	if c.V != nil {
		if c.T == "s" {
			idx, err := strconv.Atoi(strings.TrimSpace(*c.V))
			if err != nil || idx < 0 || idx >= len(shared) {
				return ""
			}
			return shared[idx]
		}
		return *c.V
	}
	if c.IS != nil {
		return c.IS.text()
	}
	return ""
}

// values lays the row's cells out by column. Cells without a reference
// follow the previous cell; cells with a malformed reference are dropped.
func (r *xlsxRow) values(shared []string) []string {
	cells := make(map[int]string, len(r.Cells))
	maxCol := -1
	prev := -1
	for i := range r.Cells {
		c := &r.Cells[i]
		col := prev + 1
		if c.R != "" {
			col = ColumnIndex(c.R)
			if col < 0 {
				continue
			}
		}
		prev = col
		cells[col] = c.text(shared)
		if col > maxCol {
			maxCol = col
		}
	}

	row := make([]string, maxCol+1)
	for col, v := range cells {
		row[col] = v
	}
	return row
}

// ColumnIndex decodes the column letters at the start of a cell reference
// such as "AB12" into a zero-based column index. It returns -1 when the
// reference has no leading letters.
func ColumnIndex(ref string) int {
	idx := 0
	for _, ch := range ref {
		switch {
		case ch >= 'A' && ch <= 'Z':
			idx = idx*26 + int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			idx = idx*26 + int(ch-'a') + 1
		default:
			return idx - 1
		}
		if idx > maxColumns {
			return -1
		}
	}
	return idx - 1
}

// maxColumns is the widest sheet the format allows (column XFD).
const maxColumns = 16384
