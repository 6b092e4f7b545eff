package parser

import "fmt"

// Error is the single diagnostic type the parser can produce. Parsing is
// the only pipeline stage that can fail (§7): the lexer, transforms and
// generator are total functions over whatever AST shape the parser emits.
type Error struct {
	File    string
	Message string
	Line    int
	Column  int
	// Excerpt is up to 30 characters of source starting at the error
	// position, for human-readable diagnostics.
	Excerpt string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %q", e.File, e.Line, e.Column, e.Message, e.Excerpt)
}

func excerpt(src string, offset int) string {
	end := offset + 30
	if end > len(src) {
		end = len(src)
	}
	if offset > len(src) {
		offset = len(src)
	}
	return src[offset:end]
}
