package codegen

import (
	"strings"

	"transplator/internal/source"
)

// Unit is the generated source of one template.
type Unit struct {
	Name     string
	Text     string
	Encoding source.Encoding
}

// Empty reports whether the template produced no code.
func (u *Unit) Empty() bool {
	return u == nil || u.Text == ""
}

// Lines splits the text on '\n'. Since every emitted line is terminated,
// the last element of a non-empty unit is "".
func (u *Unit) Lines() []string {
	if u.Empty() {
		return nil
	}
	return strings.Split(u.Text, "\n")
}

// Bytes encodes the text for writing, prefixed with the encoding's BOM if
// it has one.
func (u *Unit) Bytes() ([]byte, error) {
	if u.Empty() {
		return nil, nil
	}
	return u.Encoding.Or(source.UTF8).Encode(u.Text)
}
