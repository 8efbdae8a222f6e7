// internal/parser/parser.go
package parser

import "unicode"

// state is the scanner position within the directive grammar.
type state int

const (
	stateNone state = iota
	stateName
	stateValue
	stateSingleQuote
	stateDoubleQuote
)

// isSpace matches the ECMAScript `\s` class: Unicode white space, line
// terminators and the byte order mark, but not NEL.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// isNameChar matches `[A-Za-z0-9\-:_]`.
func isNameChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == ':', r == '_':
		return true
	}
	return false
}

// scanner holds the in-progress token while walking the input.
type scanner struct {
	text     string
	state    state
	escaping bool
	name     []rune
	value    []rune
	tokens   []Token
}

func (s *scanner) push() {
	s.tokens = append(s.tokens, Token{Name: string(s.name), Value: string(s.value)})
	s.name = s.name[:0]
	s.value = s.value[:0]
}

// Parse splits text into directive tokens in left-to-right order. Duplicate
// names are kept as separate tokens. An empty or all-whitespace input yields
// an empty, non-nil slice.
//
// On a malformed name Parse returns a *ParseError and no tokens. A quoted
// value left open at the end of input is accepted as if it were closed, and
// a trailing lone backslash is dropped.
func Parse(text string) ([]Token, error) {
	s := &scanner{text: text, tokens: []Token{}}

	pos := -1
	for _, r := range text {
		pos++
		switch s.state {
		case stateNone:
			if isSpace(r) {
				continue
			}
			if !isNameChar(r) {
				return nil, s.fail(pos)
			}
			s.state = stateName
			s.name = append(s.name, r)

		case stateName:
			switch {
			case isSpace(r):
				s.state = stateNone
				s.push()
			case isNameChar(r):
				s.name = append(s.name, r)
			case r == '=':
				s.state = stateValue
			default:
				return nil, s.fail(pos)
			}

		case stateValue:
			if s.escaping {
				s.value = append(s.value, r)
				s.escaping = false
				continue
			}
			switch {
			case isSpace(r):
				s.state = stateNone
				s.push()
			case r == '\\':
				s.escaping = true
			case r == '\'':
				s.state = stateSingleQuote
			case r == '"':
				s.state = stateDoubleQuote
			default:
				s.value = append(s.value, r)
			}

		case stateSingleQuote, stateDoubleQuote:
			if s.escaping {
				s.value = append(s.value, r)
				s.escaping = false
				continue
			}
			switch {
			case r == s.quote():
				s.state = stateValue
			case r == '\\':
				s.escaping = true
			default:
				s.value = append(s.value, r)
			}
		}
	}

	if s.state != stateNone {
		s.push()
	}
	return s.tokens, nil
}

// quote returns the closing character for the current quoted state.
func (s *scanner) quote() rune {
	if s.state == stateSingleQuote {
		return '\''
	}
	return '"'
}

func (s *scanner) fail(pos int) *ParseError {
	return &ParseError{
		Message:  invalidNameMessage,
		Text:     s.text,
		Position: pos,
	}
}
