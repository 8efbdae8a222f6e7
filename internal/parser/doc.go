// internal/parser/doc.go

/*
Package parser turns the value of a directives attribute into an ordered list
of name/value tokens.

The grammar is a whitespace-separated list of directives, each optionally
followed by `=` and a value:

	highlight tooltip='hello world' color="dark \"blue\"" size=large\ text

Names may contain only letters, digits, `-`, `:` and `_`. Values may be
unquoted (ending at whitespace), single-quoted or double-quoted. A backslash
makes the next character literal in any value form.
*/
package parser
