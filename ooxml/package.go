// Package ooxml reads cell text straight out of a spreadsheet package (the
// zip/XML container behind .xlsx files). It knows about shared strings, the
// workbook's sheet list and relationships, and the sheetData of a worksheet
// part. Styles, formulas and number formats are ignored.
package ooxml

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

const (
	workbookPart      = "xl/workbook.xml"
	workbookRelsPart  = "xl/_rels/workbook.xml.rels"
	sharedStringsPart = "xl/sharedStrings.xml"
)

// ErrNotSpreadsheet is returned when the input is not a zip container or
// lacks a workbook part.
var ErrNotSpreadsheet = errors.New("not a spreadsheet package")

// Package is an open spreadsheet package.
type Package struct {
	zr     *zip.Reader
	closer io.Closer
}

// Open opens the spreadsheet package at path. The caller must Close it.
func Open(name string) (*Package, error) {
	rc, err := zip.OpenReader(name)
	if errors.Is(err, zip.ErrFormat) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotSpreadsheet)
	}
	if err != nil {
		return nil, err
	}
	return &Package{zr: &rc.Reader, closer: rc}, nil
}

// NewPackage reads a spreadsheet package from r, which has the given size.
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSpreadsheet, err)
	}
	return &Package{zr: zr}, nil
}

func (p *Package) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// readPart returns the named part, or nil without error when the package
// does not contain it.
func (p *Package) readPart(name string) ([]byte, error) {
	bs, err := fs.ReadFile(p.zr, name)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return bs, nil
}

// SharedStrings returns the shared string table in index order. A package
// without a shared strings part has an empty table.
func (p *Package) SharedStrings() ([]string, error) {
	bs, err := p.readPart(sharedStringsPart)
	if err != nil || bs == nil {
		return nil, err
	}

	var sst xlsxSST
	if err := xml.Unmarshal(bs, &sst); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", sharedStringsPart, err)
	}

	shared := make([]string, len(sst.SI))
	for i, si := range sst.SI {
		shared[i] = si.text()
	}
	return shared, nil
}

func (p *Package) workbook() (*xlsxWorkbook, error) {
	bs, err := p.readPart(workbookPart)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		return nil, fmt.Errorf("missing %s: %w", workbookPart, ErrNotSpreadsheet)
	}
	var wb xlsxWorkbook
	if err := xml.Unmarshal(bs, &wb); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", workbookPart, err)
	}
	return &wb, nil
}

// SheetNames returns the sheet names in workbook order.
func (p *Package) SheetNames() ([]string, error) {
	wb, err := p.workbook()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(wb.Sheets))
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	return names, nil
}

// SheetTargets maps each sheet name to the path of its worksheet part
// inside the package. Sheets whose relationship cannot be found are left
// out.
func (p *Package) SheetTargets() (map[string]string, error) {
	wb, err := p.workbook()
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string, len(wb.Sheets))
	bs, err := p.readPart(workbookRelsPart)
	if err != nil || bs == nil {
		return targets, err
	}

	var rels xlsxRelationships
	if err := xml.Unmarshal(bs, &rels); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", workbookRelsPart, err)
	}
	byID := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		byID[rel.ID] = rel.Target
	}

	for _, s := range wb.Sheets {
		target, ok := byID[s.RID]
		if !ok || target == "" {
			continue
		}
		targets[s.Name] = resolveTarget(target)
	}
	return targets, nil
}

// resolveTarget turns a workbook relationship target into a part name.
// Relative targets are relative to xl/, absolute ones to the package root.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	if strings.HasPrefix(target, "xl/") {
		return path.Clean(target)
	}
	return path.Join("xl", target)
}

// Rows returns the cell text of the worksheet part at target, one slice per
// row element. Each row is padded with empty strings up to its highest
// referenced column. A missing part yields no rows.
func (p *Package) Rows(target string, shared []string) ([][]string, error) {
	bs, err := p.readPart(target)
	if err != nil || bs == nil {
		return nil, err
	}

	var ws xlsxWorksheet
	if err := xml.Unmarshal(bs, &ws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", target, err)
	}

	rows := make([][]string, 0, len(ws.Rows))
	for _, r := range ws.Rows {
		rows = append(rows, r.values(shared))
	}
	return rows, nil
}

// SheetRows is a convenience for Rows on the part behind a sheet name. The
// second result is false when the workbook has no such sheet.
func (p *Package) SheetRows(sheet string, shared []string) ([][]string, bool, error) {
	targets, err := p.SheetTargets()
	if err != nil {
		return nil, false, err
	}
	target, ok := targets[sheet]
	if !ok {
		return nil, false, nil
	}
	rows, err := p.Rows(target, shared)
	return rows, true, err
}
