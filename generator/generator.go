// Package generator renders a normalized AST into base-language source
// text plus calls against the runtime API (createRootElement,
// createElement, createTextNode, createComment, insert, spread,
// subcomponent, S). Every mapped position is emitted as an inline marker
// (see Mark) that package sourcemap scans for and strips in a later pass;
// the generator itself never builds a mapping table, matching the
// two-stage "generate, then post-process the marks" design of §4.5.
package generator

import (
	"fmt"
	"strings"

	"github.com/jsxcompile/jsxc/ast"
)

// markStart and markEnd delimit an inline location marker:  <line>,<col> .
// They use the NUL byte, which cannot occur in valid source text, as a
// zero-collision-risk sentinel.
const (
	markStart = "\x00"
	markEnd   = "\x00"
)

// Mark renders the location marker for loc. Exported so package sourcemap
// can match it by exact format without importing this package.
func Mark(loc ast.Loc) string {
	if !loc.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s%d,%d%s", markStart, loc.Line, loc.Column, markEnd)
}

const runtimeImport = "runtime"

// rootStateVar is both the reactive wrapper's parameter name and the
// accumulator a chain of Mixins threads its last link into. It shares the
// "__" prefix of rootID, the identifier of an element's root.
const rootStateVar = "__state"

// Generate renders top to source text. The dialect-specific normalization
// passes have already run by the time Generate sees the tree, so this
// stage only needs each Element's Dialect field, not the original jsx
// flag.
func Generate(top *ast.CodeTopLevel) string {
	var b strings.Builder
	writeSegments(&b, top.Segments)
	return b.String()
}

func writeSegments(b *strings.Builder, segs []ast.Segment) {
	for _, seg := range segs {
		switch v := seg.(type) {
		case *ast.CodeText:
			b.WriteString(Mark(v.Loc))
			b.WriteString(v.Text)
		case *ast.Element:
			b.WriteString(Mark(v.Loc))
			writeElement(b, v)
		}
	}
}

// writeEmbedded writes an EmbeddedCode's segments without location marks:
// only top-level segments (written by writeSegments) carry marks.
func writeEmbedded(b *strings.Builder, code *ast.EmbeddedCode) {
	if code == nil {
		return
	}
	for _, seg := range code.Segments {
		switch v := seg.(type) {
		case *ast.CodeText:
			b.WriteString(v.Text)
		case *ast.Element:
			writeElement(b, v)
		}
	}
}

// embeddedToString renders an EmbeddedCode's segments back to raw source
// text with no location marks. It serves both the static/dynamic-property
// heuristic and the statements that splice the expression into the output.
func embeddedToString(code *ast.EmbeddedCode) string {
	var b strings.Builder
	writeEmbedded(&b, code)
	return b.String()
}

// writeElement emits el as a standalone expression: a bare runtime call
// for a leaf Html/SvgInferred element (no properties, no content), a
// SubComponent call for Component elements, or an IIFE that declares the
// root identifier "__" and builds the element's properties and children.
func writeElement(b *strings.Builder, el *ast.Element) {
	if el.Dialect == ast.Component {
		writeComponent(b, el)
		return
	}
	if isLeaf(el) {
		fmt.Fprintf(b, "%s.createRootElement(%s)", runtimeImport, codeStr(el.Tag))
		return
	}
	ids := newIdentGen()
	b.WriteString("(function(){ ")
	fmt.Fprintf(b, "var %s = %s.createRootElement(%s); ", rootID, runtimeImport, codeStr(el.Tag))
	writePropertiesAndChildren(b, el, rootID, ids)
	fmt.Fprintf(b, "return %s; })()", rootID)
}

// isLeaf reports whether el can use the createRootElement fast path: the
// one-argument call is only valid when the element has nothing else to
// attach, per §4.4's leaf optimization.
func isLeaf(el *ast.Element) bool {
	return len(el.Properties) == 0 && len(el.Content) == 0
}

func propKey(name string) string {
	if isValidIdent(name) {
		return name
	}
	return codeStr(name)
}

func isValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// writePropertiesAndChildren emits id's property statements (inline, or
// collected into one shared reactive computation when any property needs
// one) followed by its children, all as flat statements inside the
// enclosing IIFE - there is exactly one IIFE per generated element tree,
// never one per nested element.
func writePropertiesAndChildren(b *strings.Builder, el *ast.Element, id string, ids *identGen) {
	dynamic, hasMixins := classifyDynamic(el.Properties)
	stmts := propertyStatements(el.Properties, id)

	if len(stmts) > 0 {
		if !dynamic {
			for _, s := range stmts {
				b.WriteString(s)
				b.WriteString(" ")
			}
		} else if hasMixins {
			stmts[len(stmts)-1] = "return " + stmts[len(stmts)-1]
			fmt.Fprintf(b, "%s.S(function (%s) { %s }, {}); ", runtimeImport, rootStateVar, strings.Join(stmts, " "))
		} else {
			fmt.Fprintf(b, "%s.S(function () { %s }); ", runtimeImport, strings.Join(stmts, " "))
		}
	}

	for _, c := range el.Content {
		writeChild(b, id, c, ids)
	}
}

// classifyDynamic implements §4.4 step 4: an element is dynamic when it
// carries a Mixin, or when a DynamicProperty/StyleProperty's code fails
// the no-apparent-signals heuristic.
func classifyDynamic(props []ast.Property) (dynamic, hasMixins bool) {
	for _, p := range props {
		switch v := p.(type) {
		case *ast.SpreadProperty:
			hasMixins = true
			dynamic = true
		case *ast.DynamicProperty:
			if hasSignal(embeddedToString(v.Code)) {
				dynamic = true
			}
		case *ast.StyleProperty:
			if hasSignal(embeddedToString(v.Code)) {
				dynamic = true
			}
		}
	}
	return dynamic, hasMixins
}

// propertyStatements renders each property of el (bound to identifier id)
// to its §4.4 step 3 statement text, in source order. Mixins chain a
// running "state" value through runtime.spread: a non-last Mixin assigns
// into a freshly named var, the last Mixin assigns into rootStateVar
// (threading into the reactive wrapper's own parameter when one exists),
// and a Mixin that is also the element's very last property omits its
// assignment target entirely.
func propertyStatements(props []ast.Property, id string) []string {
	lastSpread := -1
	for i, p := range props {
		if _, ok := p.(*ast.SpreadProperty); ok {
			lastSpread = i
		}
	}

	var stmts []string
	prevState := rootStateVar
	mixinCount := 0
	for i, p := range props {
		switch v := p.(type) {
		case *ast.StaticProperty:
			stmts = append(stmts, fmt.Sprintf("%s.%s = %s;", id, v.Name, codeStr(v.Value)))
		case *ast.DynamicProperty:
			expr := embeddedToString(v.Code)
			if v.Name == "ref" {
				stmts = append(stmts, fmt.Sprintf("%s = %s;", expr, id))
			} else {
				stmts = append(stmts, fmt.Sprintf("%s.%s = %s;", id, v.Name, expr))
			}
		case *ast.StyleProperty:
			stmts = append(stmts, fmt.Sprintf("%s.style = %s;", id, embeddedToString(v.Code)))
		case *ast.SpreadProperty:
			expr := embeddedToString(v.Code)
			final := i == len(props)-1
			if final {
				stmts = append(stmts, fmt.Sprintf("%s.spread(%s, %s, %s);", runtimeImport, expr, id, prevState))
				continue
			}
			name := rootStateVar
			decl := ""
			if i != lastSpread {
				mixinCount++
				name = fmt.Sprintf("mixin%d", mixinCount)
				decl = "var "
			}
			stmts = append(stmts, fmt.Sprintf("%s%s = %s.spread(%s, %s, %s);", decl, name, runtimeImport, expr, id, prevState))
			prevState = name
		}
	}
	return stmts
}

// writeChild emits one statement (or pair of statements) attaching c to
// parentID, per §4.4 step 5. Html/SvgInferred elements are flattened
// inline using createElement's append side effect rather than wrapped in
// their own IIFE; Component children still need an explicit appendChild
// since subcomponent's contract has no parent argument to append through.
func writeChild(b *strings.Builder, parentID string, c ast.Child, ids *identGen) {
	switch v := c.(type) {
	case *ast.Text:
		fmt.Fprintf(b, "%s.createTextNode(%s, %s); ", runtimeImport, codeStr(v.Text), parentID)
	case *ast.Comment:
		fmt.Fprintf(b, "%s.createComment(%s, %s); ", runtimeImport, codeStr(v.Text), parentID)
	case *ast.Element:
		if v.Dialect == ast.Component {
			fmt.Fprintf(b, "%s.appendChild(", parentID)
			writeComponent(b, v)
			b.WriteString("); ")
			return
		}
		id := ids.Next(parentID, v.Tag)
		fmt.Fprintf(b, "var %s = %s.createElement(%s, %s); ", id, runtimeImport, codeStr(v.Tag), parentID)
		writePropertiesAndChildren(b, v, id, ids)
	case *ast.Insert:
		id := ids.Next(parentID, "insert")
		fmt.Fprintf(b, "var %s = %s.createTextNode('', %s); ", id, runtimeImport, parentID)
		expr := embeddedToString(v.Code)
		fmt.Fprintf(b, "%s.S(function (range) { %s.insert(range, %s); }, { start: %s, end: %s }); ",
			runtimeImport, runtimeImport, expr, id, id)
	}
}

type componentGroupKind int

const (
	groupObject componentGroupKind = iota
	groupMixin
)

type componentGroup struct {
	kind componentGroupKind
	text string
}

// writeComponent emits a Component element per §4.4 step 2: consecutive
// non-Mixin properties merge into one object-literal group, each Mixin
// stands alone as its own group, and the children array is folded into
// the "children" key of the first group (prepending an empty object group
// when the first group is itself a Mixin). A single object group with no
// Mixins collapses to a bare Name(object) call; otherwise the full group
// list is passed to runtime.subcomponent.
func writeComponent(b *strings.Builder, el *ast.Element) {
	groups := buildComponentGroups(el.Properties)
	children := buildChildrenArray(el.Content)

	if len(groups) == 0 {
		groups = []componentGroup{{kind: groupObject, text: "{}"}}
	}
	if groups[0].kind == groupObject {
		groups[0].text = mergeChildren(groups[0].text, children)
	} else {
		groups = append([]componentGroup{{kind: groupObject, text: fmt.Sprintf("{ children: %s }", children)}}, groups...)
	}

	if len(groups) == 1 {
		fmt.Fprintf(b, "%s(%s)", el.Tag, groups[0].text)
		return
	}
	fmt.Fprintf(b, "%s.subcomponent(%s, [", runtimeImport, el.Tag)
	for i, g := range groups {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.text)
	}
	b.WriteString("])")
}

func buildComponentGroups(props []ast.Property) []componentGroup {
	var groups []componentGroup
	var cur strings.Builder
	open := false
	flush := func() {
		if open {
			cur.WriteString(" }")
			groups = append(groups, componentGroup{kind: groupObject, text: cur.String()})
			cur.Reset()
			open = false
		}
	}
	for _, p := range props {
		if sp, ok := p.(*ast.SpreadProperty); ok {
			flush()
			groups = append(groups, componentGroup{kind: groupMixin, text: embeddedToString(sp.Code)})
			continue
		}
		if !open {
			cur.WriteString("{ ")
			open = true
		} else {
			cur.WriteString(", ")
		}
		switch v := p.(type) {
		case *ast.StaticProperty:
			fmt.Fprintf(&cur, "%s: %s", propKey(v.Name), codeStr(v.Value))
		case *ast.DynamicProperty:
			fmt.Fprintf(&cur, "%s: %s", propKey(v.Name), embeddedToString(v.Code))
		case *ast.StyleProperty:
			fmt.Fprintf(&cur, "style: %s", embeddedToString(v.Code))
		}
	}
	flush()
	return groups
}

func buildChildrenArray(content []ast.Child) string {
	if len(content) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[")
	for i, c := range content {
		if i > 0 {
			b.WriteString(", ")
		}
		writeComponentChild(&b, c)
	}
	b.WriteString("]")
	return b.String()
}

func mergeChildren(obj, children string) string {
	if obj == "{}" {
		return fmt.Sprintf("{ children: %s }", children)
	}
	return fmt.Sprintf("%s, children: %s }", strings.TrimSuffix(obj, " }"), children)
}

func writeComponentChild(b *strings.Builder, c ast.Child) {
	switch v := c.(type) {
	case *ast.Text:
		b.WriteString(codeStr(v.Text))
	case *ast.Comment:
		b.WriteString(codeStr(v.Text))
	case *ast.Element:
		writeElement(b, v)
	case *ast.Insert:
		b.WriteString(embeddedToString(v.Code))
	}
}
