package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// TplSyntax: malformed or unclosed tag.
	TplSyntax Code = 1
	// TplLoad: template file could not be read or decoded.
	TplLoad Code = 2
	// TplWrite: generated file could not be written.
	TplWrite Code = 3
	// TplDuplicateName: two templates resolve to the same class or output file.
	TplDuplicateName Code = 4
	// TplNoOutput: template produced no code (empty or comments only).
	TplNoOutput Code = 5
)

var (
	codeDescription = map[Code]string{
		UnknownCode:      "Unknown error",
		TplSyntax:        "Syntax error",
		TplLoad:          "Template load failure",
		TplWrite:         "Output write failure",
		TplDuplicateName: "Duplicate template name",
		TplNoOutput:      "Template produced no output",
	}
)

// ID returns the stable identifier, e.g. "TPR001".
func (c Code) ID() string {
	if c == UnknownCode {
		return "TPR000"
	}
	return fmt.Sprintf("TPR%03d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
