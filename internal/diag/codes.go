package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Стиль многострочных контейнеров
	StyleOpenNotBroken   Code = 101
	StyleCloseNotBroken  Code = 102
	StyleCloseMisaligned Code = 110

	// Ошибки обработки файла
	TokenizeWarning      Code = 901
	IOLoadFileError      Code = 902
	StructuralUnbalanced Code = 999
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		StyleOpenNotBroken:   "Multi-line container not broken after opening character",
		StyleCloseNotBroken:  "Multi-line container not broken before closing character",
		StyleCloseMisaligned: "Multi-line container does not close on same column as opening",
		TokenizeWarning:      "Tokenizer problem",
		IOLoadFileError:      "I/O error while loading file",
		StructuralUnbalanced: "Unbalanced brackets",
	}
)

// Codes returns every known code except UnknownCode in ascending order.
func Codes() []Code {
	return []Code{
		StyleOpenNotBroken,
		StyleCloseNotBroken,
		StyleCloseMisaligned,
		TokenizeWarning,
		IOLoadFileError,
		StructuralUnbalanced,
	}
}

// IsStyle reports whether c is one of the container style codes.
func (c Code) IsStyle() bool {
	return c >= 100 && c < 200
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 100 && ic < 900:
		return fmt.Sprintf("PL%03d", ic)
	case ic >= 900 && ic < 1000:
		return fmt.Sprintf("E%03d", ic)
	}
	return "E000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Message is the canonical "<CODE> <description>" text.
func (c Code) Message() string {
	return c.ID() + " " + c.Title()
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves an identifier such as "PL101" back to its Code.
func ParseCode(id string) (Code, bool) {
	for _, c := range Codes() {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
