package microsite

import (
	"bytes"
	"fmt"

	"humano.dev/conserje/output"
)

const tsDeclarations = `export interface Conversation {
  topic: string
  sub_tema: string
  intro?: string
  fase: string
  titulo: string
  contenido: string
  imagen?: string
  cierre?: string
  proximo_paso?: string
  ctas: string
}

export interface Profile {
  name: string
  icon: string
  description: string
  caracteristica: string
  grupo: string
  conversations: Conversation[]
}

`

// TypeScript renders the profiles as a TypeScript module exporting a typed
// profiles constant. source names the workbook in the header comment.
func TypeScript(profiles []Profile, source string) ([]byte, error) {
	data, err := output.JSON(profiles)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by microsite-json from %s. DO NOT EDIT.\n", source)
	fmt.Fprintf(&buf, "// To regenerate: go run ./cmd/microsite-json\n\n")
	buf.WriteString(tsDeclarations)
	buf.WriteString("export const profiles: Profile[] = ")
	buf.Write(data)
	return buf.Bytes(), nil
}
