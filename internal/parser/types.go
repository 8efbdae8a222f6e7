// internal/parser/types.go
package parser

import (
	"fmt"
	"strings"
)

// Token is a single directive occurrence in an attribute value.
type Token struct {
	Name  string
	Value string
}

// String renders the token as `name` or `name=value`.
func (t Token) String() string {
	if t.Value == "" {
		return t.Name
	}
	return fmt.Sprintf("%s=%s", t.Name, t.Value)
}

// invalidNameMessage is reported when a character outside the name alphabet
// is found where a directive name is expected.
const invalidNameMessage = "Directive name must contain only alphanumeric, dash, colon or underscore characters"

// ParseError reports a malformed attribute value. Position is the zero-based
// index, in characters, of the offending character within Text.
type ParseError struct {
	Message  string
	Text     string
	Position int
}

// Error renders the message, the offending input and a caret line pointing
// at the failing character.
func (e *ParseError) Error() string {
	return strings.Join([]string{
		"Error: " + e.Message,
		"at: " + e.Text,
		"    " + strings.Repeat("-", e.Position) + "^",
	}, "\n")
}
