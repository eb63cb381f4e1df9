package quillhtml

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if the input is not valid UTF-8 or appears binary.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	var total, control int
	for _, b := range src {
		total++
		if b == 0x00 {
			return ErrBinaryInput
		}
		if isControlByte(b) {
			control++
		}
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlByte(b byte) bool {
	if b < 0x09 {
		return true
	}
	if b > 0x0D && b < 0x20 {
		return true
	}
	if b == 0x7F {
		return true
	}
	return false
}

// AttributeValidator decides whether a formatting attribute may be turned
// into a tag. Rejected attributes are dropped without error.
type AttributeValidator interface {
	Valid(name string, value any) bool
}

// AttributeValidatorFunc adapts a function to AttributeValidator.
type AttributeValidatorFunc func(name string, value any) bool

// Valid calls f(name, value).
func (f AttributeValidatorFunc) Valid(name string, value any) bool { return f(name, value) }

// WhitelistValidator accepts the attributes defined in an attribute map.
// Toggles accept only boolean true. Value-carrying tags accept any scalar
// (string, number or bool) with a non-empty text form; the value is
// embedded as is.
type WhitelistValidator struct {
	Attributes map[string]TagDef
}

// Valid implements AttributeValidator.
func (w WhitelistValidator) Valid(name string, value any) bool {
	def, ok := w.Attributes[name]
	if !ok {
		return false
	}
	if def.Value == "" {
		on, ok := value.(bool)
		return ok && on
	}
	switch value.(type) {
	case string, float64, bool:
		return attributeString(value) != ""
	default:
		return false
	}
}
