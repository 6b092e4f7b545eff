package parser

import (
	"testing"

	"github.com/jsxcompile/jsxc/ast"
)

func TestParseCodeOnly(t *testing.T) {
	top, err := Parse("const x = 1;", "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(top.Segments) != 1 {
		t.Fatalf("got %d segments", len(top.Segments))
	}
	ct, ok := top.Segments[0].(*ast.CodeText)
	if !ok {
		t.Fatalf("got %T", top.Segments[0])
	}
	if ct.Text != "const x = 1;" {
		t.Fatalf("got %q", ct.Text)
	}
}

func TestParseLeafElement(t *testing.T) {
	top, err := Parse(`const el = <div class="a"/>;`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(top.Segments) != 3 {
		t.Fatalf("got %d segments: %+v", len(top.Segments), top.Segments)
	}
	el, ok := top.Segments[1].(*ast.Element)
	if !ok {
		t.Fatalf("got %T", top.Segments[1])
	}
	if el.Tag != "div" {
		t.Fatalf("got tag %q", el.Tag)
	}
	if len(el.Properties) != 1 {
		t.Fatalf("got %d properties", len(el.Properties))
	}
	sp, ok := el.Properties[0].(*ast.StaticProperty)
	if !ok || sp.Name != "class" || sp.Value != "a" {
		t.Fatalf("got %+v", el.Properties[0])
	}
}

func TestParseElementWithChildren(t *testing.T) {
	top, err := Parse(`<div>hello <span>world</span></div>`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if len(el.Content) != 2 {
		t.Fatalf("got %d children", len(el.Content))
	}
	text, ok := el.Content[0].(*ast.Text)
	if !ok || text.Text != "hello " {
		t.Fatalf("got %+v", el.Content[0])
	}
	span, ok := el.Content[1].(*ast.Element)
	if !ok || span.Tag != "span" {
		t.Fatalf("got %+v", el.Content[1])
	}
}

func TestParseDynamicProperty(t *testing.T) {
	top, err := Parse(`<div onClick={handleClick}/>`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	dp, ok := el.Properties[0].(*ast.DynamicProperty)
	if !ok || dp.Name != "onClick" {
		t.Fatalf("got %+v", el.Properties[0])
	}
	if len(dp.Code.Segments) != 1 {
		t.Fatalf("got %d code segments", len(dp.Code.Segments))
	}
}

func TestParseSpreadProperty(t *testing.T) {
	top, err := Parse(`<div {...props}/>`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if _, ok := el.Properties[0].(*ast.SpreadProperty); !ok {
		t.Fatalf("got %+v", el.Properties[0])
	}
}

func TestParseInsertChild(t *testing.T) {
	top, err := Parse(`<div>{count()}</div>`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if len(el.Content) != 1 {
		t.Fatalf("got %d children", len(el.Content))
	}
	if _, ok := el.Content[0].(*ast.Insert); !ok {
		t.Fatalf("got %T", el.Content[0])
	}
}

func TestParseComponentDialect(t *testing.T) {
	top, err := Parse(`<MyButton/>`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if el.Dialect != ast.Component {
		t.Fatalf("got dialect %v", el.Dialect)
	}
}

func TestParseSvgInferredDialect(t *testing.T) {
	top, err := Parse(`<svg><circle/></svg>`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if el.Dialect != ast.SvgInferred {
		t.Fatalf("got dialect %v", el.Dialect)
	}
}

func TestParseMismatchedClosingTag(t *testing.T) {
	_, err := Parse(`<div></span>`, "in.js", true)
	if err == nil {
		t.Fatal("expected error")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T", err)
	}
	if perr.Line == 0 {
		t.Fatalf("expected a located error, got %+v", perr)
	}
}

func TestParseNativeDialectInsert(t *testing.T) {
	top, err := Parse(`<div>@(count())</div>`, "in.js", false)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if len(el.Content) != 1 {
		t.Fatalf("got %d children", len(el.Content))
	}
	if _, ok := el.Content[0].(*ast.Insert); !ok {
		t.Fatalf("got %T", el.Content[0])
	}
}

func TestParseNativeDialectPropertyMixin(t *testing.T) {
	top, err := Parse(`<div @m></div>`, "in.js", false)
	if err != nil {
		t.Fatal(err)
	}
	el := top.Segments[0].(*ast.Element)
	if len(el.Properties) != 1 {
		t.Fatalf("got %d properties: %+v", len(el.Properties), el.Properties)
	}
	sp, ok := el.Properties[0].(*ast.SpreadProperty)
	if !ok {
		t.Fatalf("got %T", el.Properties[0])
	}
	if len(sp.Code.Segments) != 1 {
		t.Fatalf("got %d code segments", len(sp.Code.Segments))
	}
	ct, ok := sp.Code.Segments[0].(*ast.CodeText)
	if !ok || ct.Text != "m" {
		t.Fatalf("got %+v", sp.Code.Segments[0])
	}
}

func TestParseNestedElementInsideBrackets(t *testing.T) {
	// Elements nested inside a bracketed expression still become their own
	// Element segments - the surrounding punctuation is just CodeText -
	// so the generator can substitute generated code in their place.
	top, err := Parse(`const els = [<div/>, <span/>];`, "in.js", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(top.Segments) != 5 {
		t.Fatalf("got %d segments: %+v", len(top.Segments), top.Segments)
	}
	if ct := top.Segments[0].(*ast.CodeText); ct.Text != "const els = [" {
		t.Fatalf("got %q", ct.Text)
	}
	if el := top.Segments[1].(*ast.Element); el.Tag != "div" {
		t.Fatalf("got %+v", el)
	}
	if ct := top.Segments[2].(*ast.CodeText); ct.Text != ", " {
		t.Fatalf("got %q", ct.Text)
	}
	if el := top.Segments[3].(*ast.Element); el.Tag != "span" {
		t.Fatalf("got %+v", el)
	}
	if ct := top.Segments[4].(*ast.CodeText); ct.Text != "];" {
		t.Fatalf("got %q", ct.Text)
	}
}
