package transform

import "github.com/jsxcompile/jsxc/ast"

// promoteTextContent rewrites an element whose entire content is a single
// static Text child into a textContent StaticProperty, letting the
// generator assign it directly instead of emitting a child-insertion call.
// Elements with comments, nested elements, Inserts, or more than one Text
// child are left with their Content list intact. Component-dialect
// elements are exempt: their content is passed as a children argument to
// runtime.subcomponent, not assigned as a DOM property.
func promoteTextContent(top *ast.CodeTopLevel) {
	walkSegments(top.Segments, func(el *ast.Element) {
		if el.Dialect == ast.Component {
			return
		}
		if len(el.Content) != 1 {
			return
		}
		text, ok := el.Content[0].(*ast.Text)
		if !ok {
			return
		}
		el.Properties = append(el.Properties, &ast.StaticProperty{
			Name:  "textContent",
			Value: text.Text,
			Loc:   text.Loc,
		})
		el.Content = nil
	})
}
