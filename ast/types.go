package ast

// Dialect classifies how an Element should be emitted by the generator.
// It is derived from the element's tag name at parse time (§3 of the
// specification): a leading uppercase letter means Component, a known SVG
// tag name means SvgInferred, anything else means Html.
type Dialect int

const (
	Html Dialect = iota
	Component
	SvgInferred
)

func (d Dialect) String() string {
	switch d {
	case Html:
		return "Html"
	case Component:
		return "Component"
	case SvgInferred:
		return "SvgInferred"
	default:
		return "Unknown"
	}
}

// svgTags is the set of element names that select the SvgInferred dialect
// when lowercase. The specification only states the Component/Html split
// explicitly; SvgInferred is resolved against this fixed, commonly-used
// subset of SVG element names (see DESIGN.md for the rationale).
var svgTags = map[string]bool{
	"svg": true, "path": true, "circle": true, "rect": true, "line": true,
	"polygon": true, "polyline": true, "ellipse": true, "g": true,
	"defs": true, "use": true, "text": true, "tspan": true, "linearGradient": true,
	"radialGradient": true, "stop": true, "clipPath": true, "mask": true,
	"pattern": true, "symbol": true, "marker": true, "filter": true,
}

// DeriveDialect classifies tag according to the rule in §3: uppercase-led
// names are components, known SVG names are SvgInferred, everything else
// is a plain Html element.
func DeriveDialect(tag string) Dialect {
	if tag == "" {
		return Html
	}
	r := rune(tag[0])
	if r >= 'A' && r <= 'Z' {
		return Component
	}
	if svgTags[tag] {
		return SvgInferred
	}
	return Html
}

// Segment is the union shared by CodeTopLevel and EmbeddedCode: either a
// verbatim CodeText run or a markup Element.
type Segment interface {
	segment()
}

// CodeText is a fragment of base-language source plus the Loc where it
// starts in the original input.
type CodeText struct {
	Text string
	Loc  Loc
}

func (*CodeText) segment() {}

// CodeTopLevel is the root node: an ordered sequence of CodeText and
// Element segments.
type CodeTopLevel struct {
	Segments []Segment
}

// EmbeddedCode is code found inside a property value, a mixin, or an
// inline Insert. It shares CodeTopLevel's segment union so that markup can
// be nested inside expressions (e.g. `f(<div/>)`).
type EmbeddedCode struct {
	Segments []Segment
	Loc      Loc
}

// Element is a markup element: `<tag attr=... >children</tag>` or its
// self-closing form.
type Element struct {
	Tag        string
	Dialect    Dialect
	Properties []Property
	Content    []Child
	Loc        Loc
}

func (*Element) segment() {}
func (*Element) child()   {}

// Property is the union of the four property-position forms.
type Property interface {
	property()
}

// StaticProperty holds a literal string attribute value, e.g. class="a".
// Value is the raw, unescaped string; the generator applies the §4.4
// code-escaping rule when emitting it.
type StaticProperty struct {
	Name  string
	Value string
	Loc   Loc
}

func (*StaticProperty) property() {}

// DynamicProperty holds an attribute whose value is an embedded
// expression, e.g. onClick={handler}.
type DynamicProperty struct {
	Name string
	Code *EmbeddedCode
	Loc  Loc
}

func (*DynamicProperty) property() {}

// StyleProperty is the JSX-dialect style={{...}} shorthand kept as its own
// property kind prior to normalization. It may repeat on one element.
type StyleProperty struct {
	Code *EmbeddedCode
	Loc  Loc
}

func (*StyleProperty) property() {}

// SpreadProperty (a.k.a. Mixin in the native dialect) merges a bag of
// properties into the element at runtime. It may repeat and is
// order-significant relative to other properties.
type SpreadProperty struct {
	Code *EmbeddedCode
	Loc  Loc
}

func (*SpreadProperty) property() {}

// Child is the union of element content node kinds.
type Child interface {
	child()
}

// Text is a literal run of text content between tags.
type Text struct {
	Text string
	Loc  Loc
}

func (*Text) child() {}

// Comment is an HTML-style `<!-- ... -->` comment kept in the content list.
type Comment struct {
	Text string
	Loc  Loc
}

func (*Comment) child() {}

// Insert is an inline embedded expression in child position, whose runtime
// value is spliced between two anchor text nodes.
type Insert struct {
	Code *EmbeddedCode
	Loc  Loc
}

func (*Insert) child() {}

// PropertyName returns the property's name for uniqueness purposes, or ""
// for Spread/Style properties, which are exempt from the uniqueness
// invariant and may repeat.
func PropertyName(p Property) string {
	switch v := p.(type) {
	case *StaticProperty:
		return v.Name
	case *DynamicProperty:
		return v.Name
	default:
		return ""
	}
}
