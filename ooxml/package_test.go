package ooxml

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humano.dev/conserje/internal/xlsxtest"
)

func openParts(t *testing.T, parts map[string]string) *Package {
	t.Helper()
	bs := xlsxtest.Parts(t, parts)
	p, err := NewPackage(bytes.NewReader(bs), int64(len(bs)))
	require.NoError(t, err)
	return p
}

func TestColumnIndex(t *testing.T) {
	cases := []struct {
		in  string
		out int
	}{
		{"A", 0},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"A1", 0},
		{"c7", 2},
		{"XFD1048576", 16383},
		{"", -1},
		{"12", -1},
		{"AAAAAAAAAAAA1", -1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.out, ColumnIndex(tc.in), "ColumnIndex(%q)", tc.in)
	}
}

func TestRowsRoundTrip(t *testing.T) {
	p := openParts(t, xlsxtest.Workbook(
		xlsxtest.Sheet{Name: "Habitaciones", Rows: [][]string{
			{"nombre_publico", "check_in", "intenciones"},
			{"Hab 1", "", "x | y"},
		}},
		xlsxtest.Sheet{Name: "Servicios"},
	))
	defer p.Close()

	shared, err := p.SharedStrings()
	require.NoError(t, err)
	assert.Len(t, shared, 5)

	targets, err := p.SheetTargets()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Habitaciones": "xl/worksheets/sheet1.xml",
		"Servicios":    "xl/worksheets/sheet2.xml",
	}, targets)

	names, err := p.SheetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Habitaciones", "Servicios"}, names)

	rows, err := p.Rows(targets["Habitaciones"], shared)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"nombre_publico", "check_in", "intenciones"},
		{"Hab 1", "", "x | y"},
	}, rows)

	rows, err = p.Rows(targets["Servicios"], shared)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRowsCellKinds(t *testing.T) {
	p := openParts(t, map[string]string{
		"xl/workbook.xml": `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
			<sheets><sheet name="S" sheetId="1" r:id="rId1"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships>
			<Relationship Id="rId1" Type="worksheet" Target="/xl/worksheets/s.xml"/></Relationships>`,
		"xl/sharedStrings.xml": `<sst><si><t>zero</t></si><si><r><t>ri</t></r><r><t>ch</t></r><rPh><t>phonetic</t></rPh></si></sst>`,
		"xl/worksheets/s.xml": `<worksheet><sheetData>
			<row r="1">
				<c r="A1" t="s"><v>0</v></c>
				<c r="C1" t="s"><v>1</v></c>
				<c r="D1" t="s"><v>7</v></c>
				<c r="E1" t="s"><v>x</v></c>
				<c r="F1"><v>0.5</v></c>
				<c r="G1" t="inlineStr"><is><t>inline</t></is></c>
				<c r="H1" t="inlineStr"><is><r><t>a</t></r><r><t>b</t></r></is></c>
				<c r="I1"/>
			</row>
			<row r="2"/>
			<row r="3"><c r="B3"><v>1</v></c><c><v>2</v></c><c r="!!"><v>3</v></c></row>
		</sheetData></worksheet>`,
	})

	shared, err := p.SharedStrings()
	require.NoError(t, err)
	assert.Equal(t, []string{"zero", "rich"}, shared)

	targets, err := p.SheetTargets()
	require.NoError(t, err)
	require.Equal(t, "xl/worksheets/s.xml", targets["S"])

	rows, err := p.Rows(targets["S"], shared)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"zero", "", "rich", "", "", "0.5", "inline", "ab", ""},
		{},
		{"", "1", "2"},
	}, rows)
}

func TestMissingOptionalParts(t *testing.T) {
	p := openParts(t, map[string]string{
		"xl/workbook.xml": `<workbook><sheets>
			<sheet name="Present" sheetId="1" r:id="rId1" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/>
			<sheet name="NoRel" sheetId="2" r:id="rId9" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/>
			<sheet name="NoPart" sheetId="3" r:id="rId3" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"/>
		</sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships>
			<Relationship Id="rId1" Target="worksheets/sheet1.xml"/>
			<Relationship Id="rId3" Target="worksheets/sheet3.xml"/>
		</Relationships>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row><c r="A1" t="s"><v>0</v></c></row></sheetData></worksheet>`,
	})

	shared, err := p.SharedStrings()
	require.NoError(t, err)
	assert.Empty(t, shared)

	targets, err := p.SheetTargets()
	require.NoError(t, err)
	assert.NotContains(t, targets, "NoRel")

	rows, err := p.Rows(targets["Present"], shared)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{""}}, rows)

	rows, err = p.Rows(targets["NoPart"], shared)
	require.NoError(t, err)
	assert.Nil(t, rows)

	_, found, err := p.SheetRows("NoRel", shared)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNotSpreadsheet(t *testing.T) {
	_, err := NewPackage(bytes.NewReader([]byte("plain text")), 10)
	assert.True(t, errors.Is(err, ErrNotSpreadsheet))

	name := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(name, []byte("plain text"), 0o644))
	_, err = Open(name)
	assert.True(t, errors.Is(err, ErrNotSpreadsheet))

	_, err = Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	p := openParts(t, map[string]string{"docProps/app.xml": "<Properties/>"})
	_, err = p.SheetTargets()
	assert.True(t, errors.Is(err, ErrNotSpreadsheet))
}
