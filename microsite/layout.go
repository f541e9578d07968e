package microsite

import "fmt"

// Offset places a block field a number of rows below the marker, in the
// column to the right of it.
type Offset struct {
	Field string
	Row   int
}

// Layout is the vertical layout of a conversation block. The topic itself
// sits on the marker row.
var Layout = []Offset{
	{"sub_tema", 1},
	{"intro", 2},
	{"fase", 3},
	{"titulo", 4},
	{"contenido", 5},
	{"imagen", 6},
	{"cierre", 7},
	{"proximo_paso", 8},
	{"ctas", 9},
}

func (c *Conversation) field(name string) *string {
	switch name {
	case "topic":
		return &c.Topic
	case "sub_tema":
		return &c.SubTema
	case "intro":
		return &c.Intro
	case "fase":
		return &c.Fase
	case "titulo":
		return &c.Titulo
	case "contenido":
		return &c.Contenido
	case "imagen":
		return &c.Imagen
	case "cierre":
		return &c.Cierre
	case "proximo_paso":
		return &c.ProximoPaso
	case "ctas":
		return &c.Ctas
	}
	panic(fmt.Sprintf("microsite: unknown block field %q", name))
}
