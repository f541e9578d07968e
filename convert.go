package conserje

import (
	"fmt"
	"net/url"
	"strings"

	"humano.dev/conserje/ooxml"
)

// ConvertFile reads the concierge workbook at path.
func ConvertFile(path string) (*Document, error) {
	pkg, err := ooxml.Open(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()
	return Convert(pkg)
}

// Convert builds the concierge document from the known sheets of pkg.
// Sheets missing from the workbook contribute nothing.
func Convert(pkg *ooxml.Package) (*Document, error) {
	shared, err := pkg.SharedStrings()
	if err != nil {
		return nil, err
	}
	targets, err := pkg.SheetTargets()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Items: []Item{},
		Rules: []Rule{},
	}

	for _, sheet := range Sheets {
		stats := SheetStats{Name: sheet.Name}
		target, ok := targets[sheet.Name]
		if !ok {
			doc.Sheets = append(doc.Sheets, stats)
			continue
		}
		stats.Found = true

		rows, err := pkg.Rows(target, shared)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		if len(rows) == 0 {
			doc.Sheets = append(doc.Sheets, stats)
			continue
		}

		headers := NormalizeHeaders(rows[0])
		for _, row := range rows[1:] {
			if blankRow(row) {
				continue
			}
			stats.Rows++

			if sheet.Name == RulesSheet {
				if rule, ok := RuleFromRow(headers, row); ok {
					doc.Rules = append(doc.Rules, rule)
					stats.Rules++
				}
				continue
			}

			doc.Items = append(doc.Items, NormalizeRow(sheet.Name, headers, row))
			stats.Items++
		}
		doc.Sheets = append(doc.Sheets, stats)
	}

	return doc, nil
}

// NormalizeRow converts a data row of sheet into an item. headers are the
// normalized header row; columns with an empty header are ignored.
func NormalizeRow(sheet string, headers, row []string) Item {
	it := newItem()
	fields := rowFields(headers, row)

	for _, f := range fields {
		switch {
		case arrayFieldSet[f.name]:
			it.Set(f.name, splitList(f.value))
		case timeFieldSet[f.name]:
			if isBlank(f.value) {
				it.Set(f.name, nil)
			} else {
				it.Set(f.name, Clock(f.value))
			}
		case isBlank(f.value):
			it.Set(f.name, "")
		default:
			it.Set(f.name, f.value)
		}
	}

	for _, f := range ArrayFields {
		if _, ok := it.Get(f); !ok {
			it.Set(f, []string{})
		}
	}
	for _, d := range ScalarDefaults {
		if _, ok := it.Get(d.Field); !ok {
			it.Set(d.Field, d.Default)
		}
	}

	it.Set("tipo", sheet)
	it.Set("link_ubicacion_mapa", mapLink(it))
	return it
}

// RuleFromRow extracts a governance rule. The second result is false when
// the row carries none of the rule fields.
func RuleFromRow(headers, row []string) (Rule, bool) {
	var r Rule
	for _, f := range rowFields(headers, row) {
		switch f.name {
		case "regla_id":
			r.ID = f.value
		case "regla_clave":
			r.Key = f.value
		case "descripcion_practica":
			r.Description = f.value
		}
	}
	if isBlank(r.ID) && isBlank(r.Key) && isBlank(r.Description) {
		return Rule{}, false
	}
	return r, true
}

// MapSearchURL returns a map search link for a place near the hotel.
func MapSearchURL(name string) string {
	query := strings.TrimSpace(name) + " " + mapLinkSuffix
	return mapSearchURL + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

func mapLink(it Item) string {
	if link := it.String("link_ubicacion_mapa"); !isBlank(link) {
		return link
	}
	if it.String("tipo") != RecommendationsSheet {
		return ""
	}
	name := it.String("nombre_publico")
	if isBlank(name) {
		return ""
	}
	return MapSearchURL(name)
}

type field struct {
	name, value string
}

// rowFields pairs headers with cell values. A header that appears twice
// keeps the later column's value at the earlier position.
func rowFields(headers, row []string) []field {
	fields := make([]field, 0, len(headers))
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		v := ""
		if i < len(row) {
			v = row[i]
		}
		if j, ok := pos[h]; ok {
			fields[j].value = v
			continue
		}
		pos[h] = len(fields)
		fields = append(fields, field{h, v})
	}
	return fields
}

func blankRow(row []string) bool {
	for _, v := range row {
		if !isBlank(v) {
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
