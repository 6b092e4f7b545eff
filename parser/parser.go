// Package parser implements the recursive-descent parser described in
// §4.2 of the specification. Element, Property and child productions map to
// parseElement, parseProperty/parseProperties and parseChildren; Mixins are
// parsed inside parseProperty; parseSegments is the single engine behind
// CodeTopLevel, embeddedCode, the brace-delimited JSX forms and balanced
// bracket scanning. The parser owns all mode disambiguation; the lexer
// underneath is context-free (see package lexer's doc comment).
package parser

import (
	"fmt"

	"github.com/jsxcompile/jsxc/ast"
	"github.com/jsxcompile/jsxc/lexer"
)

// Parser turns source text into a *ast.CodeTopLevel.
type Parser struct {
	lex      *lexer.Lexer
	src      string
	filename string
	jsx      bool
}

// Parse parses src (a file named filename, for diagnostics) and returns its
// top-level AST. jsx selects which embedded-markup dialect delimiter the
// parser looks for: '{' ... '}' when true, '@' when false.
func Parse(src, filename string, jsx bool) (*ast.CodeTopLevel, error) {
	p := &Parser{lex: lexer.New(src), src: src, filename: filename, jsx: jsx}
	segs, err := p.parseSegments(func() bool { return false })
	if err != nil {
		return nil, err
	}
	return &ast.CodeTopLevel{Segments: segs}, nil
}

func (p *Parser) loc() ast.Loc {
	l := p.lex.Pos()
	return ast.Loc{Line: l.Line, Column: l.Column, Pos: l.Pos}
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	l := p.lex.Pos()
	return &Error{
		File:    p.filename,
		Message: fmt.Sprintf(format, args...),
		Line:    l.Line,
		Column:  l.Column,
		Excerpt: excerpt(p.src, l.Pos),
	}
}

func (p *Parser) isElementStart() bool {
	return p.lex.Peek() == '<' && isIdentStart(p.lex.PeekAt(1))
}

// parseSegments is the shared engine behind both the top-level
// CodeTopLevel production and embeddedCode/balancedParens: it scans
// base-language code, descending through strings, comments and bracket
// groups while tracking bracket depth, and carves out an Element segment
// wherever markup starts - at any depth, not just depth 0, so an Element
// buried inside an array literal or a call's argument list still becomes
// part of the AST instead of being skipped over as opaque text.
//
// stop is consulted only at depth 0 (the same level the caller's own
// delimiter lives at); it never fires on a bracket that's merely nested
// inside the code being scanned, e.g. an `if (x) { y }` block inside a
// property's embedded expression doesn't prematurely end the expression.
func (p *Parser) parseSegments(stop func() bool) ([]ast.Segment, error) {
	var segs []ast.Segment
	depth := 0
	runStart := p.lex.Offset()
	runLoc := p.loc()

	flush := func() {
		if p.lex.Offset() > runStart {
			segs = append(segs, &ast.CodeText{Text: p.lex.Slice(runStart), Loc: runLoc})
		}
	}

	for {
		if p.lex.AtEOF() {
			flush()
			return segs, nil
		}
		if depth == 0 && stop() {
			flush()
			return segs, nil
		}
		if p.isElementStart() {
			flush()
			el, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			segs = append(segs, el)
			runStart = p.lex.Offset()
			runLoc = p.loc()
			continue
		}

		r := p.lex.Peek()
		switch {
		case r == '"' || r == '\'' || r == '`':
			if err := p.skipStringLiteral(r); err != nil {
				return nil, err
			}
		case p.lex.PeekString("//"):
			p.skipLineComment()
		case p.lex.PeekString("/*"):
			if err := p.skipBlockComment(); err != nil {
				return nil, err
			}
		case r == '(' || r == '[' || r == '{':
			depth++
			p.lex.Advance()
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
			p.lex.Advance()
		default:
			p.lex.Advance()
		}
	}
}

func (p *Parser) skipStringLiteral(quote rune) error {
	p.lex.Advance()
	for {
		if p.lex.AtEOF() {
			return p.errorf("unterminated string literal")
		}
		r := p.lex.Advance()
		if r == '\\' && !p.lex.AtEOF() {
			p.lex.Advance()
			continue
		}
		if r == quote {
			return nil
		}
	}
}

func (p *Parser) skipLineComment() {
	for !p.lex.AtEOF() && p.lex.Peek() != '\n' {
		p.lex.Advance()
	}
}

func (p *Parser) skipBlockComment() error {
	p.lex.Advance()
	p.lex.Advance()
	for {
		if p.lex.AtEOF() {
			return p.errorf("unterminated block comment")
		}
		if p.lex.PeekString("*/") {
			p.lex.Advance()
			p.lex.Advance()
			return nil
		}
		p.lex.Advance()
	}
}

// parseElement parses a single markup element, from its opening delimiter
// through its matching closing tag (or self-closing form).
func (p *Parser) parseElement() (*ast.Element, error) {
	start := p.loc()
	p.lex.Advance() // '<'
	tag, err := p.scanIdentifier()
	if err != nil {
		return nil, err
	}
	el := &ast.Element{Tag: tag, Dialect: ast.DeriveDialect(tag), Loc: start}

	props, err := p.parseProperties()
	if err != nil {
		return nil, err
	}
	el.Properties = props

	p.skipLayoutSpace()
	if p.lex.PeekString("/>") {
		p.lex.Advance()
		p.lex.Advance()
		return el, nil
	}
	if p.lex.Peek() != '>' {
		return nil, p.errorf("expected '>' or '/>' closing <%s", tag)
	}
	p.lex.Advance()

	children, err := p.parseChildren(tag)
	if err != nil {
		return nil, err
	}
	el.Content = children
	return el, nil
}

func (p *Parser) scanIdentifier() (string, error) {
	start := p.lex.Offset()
	if !isIdentStart(p.lex.Peek()) {
		return "", p.errorf("expected identifier")
	}
	for isIdentChar(p.lex.Peek()) {
		p.lex.Advance()
	}
	return p.lex.Slice(start), nil
}

func (p *Parser) skipLayoutSpace() {
	for {
		r := p.lex.Peek()
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			p.lex.Advance()
			continue
		}
		break
	}
}

// parseProperties parses the property list inside an opening tag, up to
// (but not consuming) the closing '>' or '/>'.
func (p *Parser) parseProperties() ([]ast.Property, error) {
	var props []ast.Property
	for {
		p.skipLayoutSpace()
		r := p.lex.Peek()
		if r == '>' || (r == '/' && p.lex.PeekAt(1) == '>') {
			return props, nil
		}
		if p.lex.AtEOF() {
			return nil, p.errorf("unexpected end of input in property list")
		}
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
}

// parseProperty parses one of: a Mixin/SpreadProperty (`{...expr}` in the
// JSX dialect, `@expr` in the native dialect), a style shorthand
// `style={{...}}`, a StaticProperty `name="value"`, or a DynamicProperty
// `name={expr}`.
func (p *Parser) parseProperty() (ast.Property, error) {
	start := p.loc()
	if p.jsx && p.lex.PeekString("{...") {
		p.lex.Advance()
		p.lex.Advance()
		p.lex.Advance()
		p.lex.Advance()
		code, err := p.parseEmbeddedCodeUntilBrace()
		if err != nil {
			return nil, err
		}
		return &ast.SpreadProperty{Code: code, Loc: start}, nil
	}
	if !p.jsx && p.lex.Peek() == '@' {
		p.lex.Advance()
		code, err := p.parseEmbeddedCodeTerminated()
		if err != nil {
			return nil, err
		}
		return &ast.SpreadProperty{Code: code, Loc: start}, nil
	}

	name, err := p.scanIdentifier()
	if err != nil {
		return nil, err
	}

	p.skipLayoutSpace()
	if p.lex.Peek() != '=' {
		// Boolean-style attribute shorthand: treat as a static "true".
		return &ast.StaticProperty{Name: name, Value: "true", Loc: start}, nil
	}
	p.lex.Advance()
	p.skipLayoutSpace()

	if name == "style" && p.lex.Peek() == '{' {
		save := p.lex.Snapshot()
		p.lex.Advance()
		if p.lex.Peek() == '{' {
			p.lex.Advance()
			code, err := p.parseEmbeddedCodeUntilDoubleBrace()
			if err != nil {
				return nil, err
			}
			return &ast.StyleProperty{Code: code, Loc: start}, nil
		}
		p.lex.Restore(save)
	}

	if p.lex.Peek() == '"' || p.lex.Peek() == '\'' {
		val, err := p.scanQuotedString()
		if err != nil {
			return nil, err
		}
		return &ast.StaticProperty{Name: name, Value: val, Loc: start}, nil
	}

	if p.lex.Peek() == '{' {
		p.lex.Advance()
		code, err := p.parseEmbeddedCodeUntilBrace()
		if err != nil {
			return nil, err
		}
		return &ast.DynamicProperty{Name: name, Code: code, Loc: start}, nil
	}

	return nil, p.errorf("expected property value for %q", name)
}

func (p *Parser) scanQuotedString() (string, error) {
	quote := p.lex.Advance()
	start := p.lex.Offset()
	for {
		if p.lex.AtEOF() {
			return "", p.errorf("unterminated attribute string")
		}
		if p.lex.Peek() == quote {
			val := p.lex.Slice(start)
			p.lex.Advance()
			return val, nil
		}
		p.lex.Advance()
	}
}

// parseEmbeddedCodeUntilBrace parses an EmbeddedCode body up to (and
// consuming) its matching closing '}'. The opening '{' must already have
// been consumed by the caller.
func (p *Parser) parseEmbeddedCodeUntilBrace() (*ast.EmbeddedCode, error) {
	start := p.loc()
	segs, err := p.parseSegments(func() bool { return p.lex.Peek() == '}' || p.lex.AtEOF() })
	if err != nil {
		return nil, err
	}
	if p.lex.Peek() != '}' {
		return nil, p.errorf("unterminated embedded expression")
	}
	p.lex.Advance()
	return &ast.EmbeddedCode{Segments: segs, Loc: start}, nil
}

// parseEmbeddedCodeTerminated parses the native dialect's bare embeddedCode
// production, used by property-position Mixins (`@expr`): it reads until a
// top-level code-terminator character (whitespace, `<>/,;)]}`) rather than
// a matching closing delimiter, since there is no opening bracket to match
// against - the terminator itself is left unconsumed for the caller.
func (p *Parser) parseEmbeddedCodeTerminated() (*ast.EmbeddedCode, error) {
	start := p.loc()
	segs, err := p.parseSegments(func() bool {
		if p.lex.AtEOF() {
			return true
		}
		switch p.lex.Peek() {
		case ' ', '\t', '\r', '\n', '<', '>', '/', ',', ';', ')', ']', '}':
			return true
		default:
			return false
		}
	})
	if err != nil {
		return nil, err
	}
	return &ast.EmbeddedCode{Segments: segs, Loc: start}, nil
}

// parseEmbeddedCodeUntilDoubleBrace parses the body of a style={{ ... }}
// shorthand; both closing braces are consumed.
func (p *Parser) parseEmbeddedCodeUntilDoubleBrace() (*ast.EmbeddedCode, error) {
	start := p.loc()
	segs, err := p.parseSegments(func() bool {
		return (p.lex.Peek() == '}' && p.lex.PeekAt(1) == '}') || p.lex.AtEOF()
	})
	if err != nil {
		return nil, err
	}
	if !(p.lex.Peek() == '}' && p.lex.PeekAt(1) == '}') {
		return nil, p.errorf("unterminated style expression")
	}
	p.lex.Advance()
	p.lex.Advance()
	return &ast.EmbeddedCode{Segments: segs, Loc: start}, nil
}

// parseChildren parses content between an opening and closing tag (tag is
// the already-parsed opening tag name, for matching against the closer).
func (p *Parser) parseChildren(tag string) ([]ast.Child, error) {
	var children []ast.Child
	for {
		if p.lex.AtEOF() {
			return nil, p.errorf("unexpected end of input, expected </%s>", tag)
		}
		if p.lex.PeekString("</") {
			break
		}
		if p.lex.PeekString("<!--") {
			c, err := p.parseComment()
			if err != nil {
				return nil, err
			}
			children = append(children, c)
			continue
		}
		if p.isElementStart() {
			el, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			children = append(children, el)
			continue
		}
		if p.isInsertStart() {
			ins, err := p.parseInsert()
			if err != nil {
				return nil, err
			}
			children = append(children, ins)
			continue
		}
		text, err := p.parseText(tag)
		if err != nil {
			return nil, err
		}
		if text != nil {
			children = append(children, text)
		}
	}

	p.lex.Advance() // '<'
	p.lex.Advance() // '/'
	closeTag, err := p.scanIdentifier()
	if err != nil {
		return nil, err
	}
	if closeTag != tag {
		return nil, p.errorf("mismatched closing tag </%s>, expected </%s>", closeTag, tag)
	}
	p.skipLayoutSpace()
	if p.lex.Peek() != '>' {
		return nil, p.errorf("expected '>' closing </%s>", tag)
	}
	p.lex.Advance()
	return children, nil
}

func (p *Parser) isInsertStart() bool {
	if p.jsx {
		return p.lex.Peek() == '{' && !p.lex.PeekString("{...")
	}
	return p.lex.Peek() == '@' && p.lex.PeekAt(1) == '('
}

// parseInsert parses an inline embedded expression in child position:
// `{expr}` in the JSX dialect, `@(expr)` in the native dialect.
func (p *Parser) parseInsert() (*ast.Insert, error) {
	start := p.loc()
	if p.jsx {
		p.lex.Advance() // '{'
		code, err := p.parseEmbeddedCodeUntilBrace()
		if err != nil {
			return nil, err
		}
		return &ast.Insert{Code: code, Loc: start}, nil
	}
	p.lex.Advance() // '@'
	p.lex.Advance() // '('
	segs, err := p.parseSegments(func() bool { return p.lex.Peek() == ')' || p.lex.AtEOF() })
	if err != nil {
		return nil, err
	}
	if p.lex.Peek() != ')' {
		return nil, p.errorf("unterminated native insert")
	}
	p.lex.Advance()
	return &ast.Insert{Code: &ast.EmbeddedCode{Segments: segs, Loc: start}, Loc: start}, nil
}

func (p *Parser) parseComment() (*ast.Comment, error) {
	start := p.loc()
	p.lex.Advance()
	p.lex.Advance()
	p.lex.Advance()
	p.lex.Advance() // '<!--'
	textStart := p.lex.Offset()
	for !p.lex.PeekString("-->") {
		if p.lex.AtEOF() {
			return nil, p.errorf("unterminated comment")
		}
		p.lex.Advance()
	}
	text := p.lex.Slice(textStart)
	p.lex.Advance()
	p.lex.Advance()
	p.lex.Advance()
	return &ast.Comment{Text: text, Loc: start}, nil
}

// parseText consumes a run of literal text content, stopping before the
// next Element, Insert, comment or closing tag.
func (p *Parser) parseText(tag string) (*ast.Text, error) {
	start := p.loc()
	startOffset := p.lex.Offset()
	for !p.lex.AtEOF() && !p.lex.PeekString("</") && !p.lex.PeekString("<!--") &&
		!p.isElementStart() && !p.isInsertStart() {
		if p.lex.Peek() == '<' {
			// A '<' that doesn't open an element or a closing tag is
			// literal text (e.g. a stray comparison-looking character in
			// content); consume it as text.
			p.lex.Advance()
			continue
		}
		p.lex.Advance()
	}
	text := p.lex.Slice(startOffset)
	if text == "" {
		return nil, nil
	}
	return &ast.Text{Text: text, Loc: start}, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '-'
}
