// Package microsite extracts the traveler-profile conversation scripts from
// the microsite FAQ workbook.
package microsite

import (
	_ "embed"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Schema is the JSON schema of the encoded profile list.
//
//go:embed conversations.schema.json
var Schema []byte

// ErrNoProfiles is returned when the workbook has none of the profile
// sheets.
var ErrNoProfiles = errors.New("no profile sheets found")

// Marker is the cell text that anchors a conversation block.
const Marker = "TOPIC"

type Profile struct {
	Name           string         `json:"name"`
	Icon           string         `json:"icon"`
	Description    string         `json:"description"`
	Caracteristica string         `json:"caracteristica"`
	Grupo          string         `json:"grupo"`
	Conversations  []Conversation `json:"conversations"`
}

type Conversation struct {
	Topic       string `json:"topic"`
	SubTema     string `json:"sub_tema"`
	Intro       string `json:"intro"`
	Fase        string `json:"fase"`
	Titulo      string `json:"titulo"`
	Contenido   string `json:"contenido"`
	Imagen      string `json:"imagen"`
	Cierre      string `json:"cierre"`
	ProximoPaso string `json:"proximo_paso"`
	Ctas        string `json:"ctas"`
}

// ProfileSheet is the presentation data of one profile sheet.
type ProfileSheet struct {
	Sheet          string
	Icon           string
	Description    string
	Caracteristica string
	Grupo          string
}

// Profiles lists the profile sheets in output order.
var Profiles = []ProfileSheet{
	{"Trabajo Solo", "💼", "Viajero de negocios individual", "trabajo", "solo"},
	{"Trabajo Pareja", "💼👥", "Viajeros de negocios en pareja", "trabajo", "pareja"},
	{"Trabajo Grupo", "💼👨‍👩‍👧‍👦", "Grupo de negocios o equipo de trabajo", "trabajo", "grupo"},
	{"Descanso Solo", "🌴", "Viajero individual buscando relajación", "descanso", "solo"},
	{"Descanso Pareja", "🌴👥", "Pareja buscando relax y desconexión", "descanso", "pareja"},
	{"Descanso Grupo", "🌴👨‍👩‍👧‍👦", "Grupo de amigos o familia en modo relax", "descanso", "grupo"},
	{"Aventura Solo", "🧭", "Viajero aventurero explorando solo", "aventura", "solo"},
	{"Aventura Pareja", "🧭👥", "Pareja de aventureros explorando juntos", "aventura", "pareja"},
	{"Aventura Grupo", "🧭👨‍👩‍👧‍👦", "Grupo de aventureros explorando Lima", "aventura", "grupo"},
}

// Result is the outcome of an extraction.
type Result struct {
	Profiles []Profile
	// Missing lists profile sheets the workbook does not have.
	Missing []string
}

// ExtractFile opens the workbook at path and extracts every profile sheet
// it contains.
func ExtractFile(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Extract(f)
}

// Extract reads the profile sheets of f. Sheets that are missing are
// reported in Result.Missing; ErrNoProfiles is returned if all are.
func Extract(f *excelize.File) (*Result, error) {
	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	res := &Result{Profiles: []Profile{}}
	for _, p := range Profiles {
		if !present[p.Sheet] {
			res.Missing = append(res.Missing, p.Sheet)
			continue
		}
		rows, err := f.GetRows(p.Sheet)
		if err != nil {
			return nil, err
		}
		res.Profiles = append(res.Profiles, Profile{
			Name:           p.Sheet,
			Icon:           p.Icon,
			Description:    p.Description,
			Caracteristica: p.Caracteristica,
			Grupo:          p.Grupo,
			Conversations:  Blocks(rows),
		})
	}

	if len(res.Profiles) == 0 {
		return res, ErrNoProfiles
	}
	return res, nil
}

// Blocks scans a sheet's cells row by row and returns the conversation
// blocks anchored on Marker cells. A block without a title or content is
// skipped.
func Blocks(rows [][]string) []Conversation {
	blocks := []Conversation{}
	for r, row := range rows {
		for c, v := range row {
			if v != Marker {
				continue
			}
			conv := blockAt(rows, r, c)
			if isBlank(conv.Titulo) || isBlank(conv.Contenido) {
				continue
			}
			blocks = append(blocks, conv)
		}
	}
	return blocks
}

func blockAt(rows [][]string, r, c int) Conversation {
	conv := Conversation{Topic: cellAt(rows, r, c+1)}
	for _, off := range Layout {
		*conv.field(off.Field) = cellAt(rows, r+off.Row, c+1)
	}
	return conv
}

func cellAt(rows [][]string, r, c int) string {
	if r < 0 || r >= len(rows) || c < 0 || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
