package microsite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"humano.dev/conserje/output"
)

// setBlock writes a conversation block with its marker at col/row.
func setBlock(t *testing.T, f *excelize.File, sheet string, col, row int, values ...string) {
	t.Helper()
	cell := func(c, r int) string {
		name, err := excelize.CoordinatesToCellName(c, r)
		require.NoError(t, err)
		return name
	}
	require.NoError(t, f.SetCellValue(sheet, cell(col, row), Marker))
	for i, v := range values {
		require.NoError(t, f.SetCellValue(sheet, cell(col+1, row+i), v))
	}
}

func fullBlock(topic string) []string {
	return []string{topic, "Sub", "Hola", "Llegada", "Título", "Contenido", "img.jpg", "Cierre", "Siguiente", "Reservar"}
}

func TestBlocks(t *testing.T) {
	rows := [][]string{
		{"TOPIC", "Check-in"},
		{"", "Sub"},
		{"", "Intro"},
		{"", "Fase"},
		{"", "Título"},
		{"", "Contenido"},
	}

	blocks := Blocks(rows)
	require.Len(t, blocks, 1)
	assert.Equal(t, Conversation{
		Topic:     "Check-in",
		SubTema:   "Sub",
		Intro:     "Intro",
		Fase:      "Fase",
		Titulo:    "Título",
		Contenido: "Contenido",
	}, blocks[0])

	rows[5][1] = ""
	assert.Empty(t, Blocks(rows))

	rows[5][1] = "Contenido"
	rows[4][1] = "  "
	assert.Empty(t, Blocks(rows))

	assert.Empty(t, Blocks(nil))
	assert.Equal(t, []Conversation{}, Blocks([][]string{{"topic", "lowercase marker"}}))
}

func TestLayout(t *testing.T) {
	seen := map[int]bool{}
	var conv Conversation
	for i, off := range Layout {
		assert.Equal(t, i+1, off.Row)
		assert.False(t, seen[off.Row])
		seen[off.Row] = true
		*conv.field(off.Field) = off.Field
	}
	assert.Equal(t, "titulo", conv.Titulo)
	assert.Equal(t, "ctas", conv.Ctas)
	assert.Equal(t, "", conv.Topic)
	assert.Panics(t, func() { conv.field("nope") })
}

func TestExtract(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Trabajo Solo"))
	setBlock(t, f, "Trabajo Solo", 1, 1, fullBlock("Primero")...)
	setBlock(t, f, "Trabajo Solo", 4, 1, fullBlock("Segundo")...)
	setBlock(t, f, "Trabajo Solo", 1, 12, fullBlock("Tercero")...)
	empty := fullBlock("Sin contenido")
	empty[5] = ""
	setBlock(t, f, "Trabajo Solo", 1, 24, empty...)

	_, err := f.NewSheet("Aventura Grupo")
	require.NoError(t, err)
	_, err = f.NewSheet("Otra")
	require.NoError(t, err)

	res, err := Extract(f)
	require.NoError(t, err)

	require.Len(t, res.Profiles, 2)
	assert.Len(t, res.Missing, 7)
	assert.Contains(t, res.Missing, "Descanso Pareja")

	work := res.Profiles[0]
	assert.Equal(t, "Trabajo Solo", work.Name)
	assert.Equal(t, "trabajo", work.Caracteristica)
	assert.Equal(t, "solo", work.Grupo)
	require.Len(t, work.Conversations, 3)
	assert.Equal(t, "Primero", work.Conversations[0].Topic)
	assert.Equal(t, "Segundo", work.Conversations[1].Topic)
	assert.Equal(t, "Tercero", work.Conversations[2].Topic)
	assert.Equal(t, "Reservar", work.Conversations[2].Ctas)

	adventure := res.Profiles[1]
	assert.Equal(t, "Aventura Grupo", adventure.Name)
	assert.Equal(t, []Conversation{}, adventure.Conversations)

	bs, err := output.JSON(res.Profiles)
	require.NoError(t, err)
	require.NoError(t, output.Validate(Schema, bs))
}

func TestExtractFile(t *testing.T) {
	f := excelize.NewFile()
	setBlock(t, f, "Sheet1", 2, 3, fullBlock("x")...)
	name := filepath.Join(t.TempDir(), "faqs.xlsx")
	require.NoError(t, f.SaveAs(name))
	require.NoError(t, f.Close())

	res, err := ExtractFile(name)
	assert.ErrorIs(t, err, ErrNoProfiles)
	assert.Empty(t, res.Profiles)
	assert.Len(t, res.Missing, len(Profiles))

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestTypeScript(t *testing.T) {
	profiles := []Profile{{
		Name:           "Descanso Solo",
		Icon:           "🌴",
		Caracteristica: "descanso",
		Grupo:          "solo",
		Conversations: []Conversation{{
			Topic:     "Spa",
			Titulo:    "Masajes & más",
			Contenido: "Reserva <hoy>",
		}},
	}}

	ts, err := TypeScript(profiles, "doc/microsite-faqs.xlsx")
	require.NoError(t, err)
	src := string(ts)

	assert.True(t, strings.HasPrefix(src, "// Code generated by microsite-json from doc/microsite-faqs.xlsx. DO NOT EDIT.\n"))
	assert.Contains(t, src, "export interface Conversation {")
	assert.Contains(t, src, "export interface Profile {")
	assert.Contains(t, src, `"titulo": "Masajes & más"`)
	assert.Contains(t, src, `"contenido": "Reserva <hoy>"`)

	data, err := output.JSON(profiles)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(src, "export const profiles: Profile[] = "+string(data)))
}
