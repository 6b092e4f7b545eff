package transform

import (
	"regexp"
	"strings"

	"github.com/jsxcompile/jsxc/ast"
)

var eventPropertyName = regexp.MustCompile(`^on[A-Z]`)

// eventNameOverrides holds the event names whose lowercase DOM name isn't
// the mechanical lowercase-first-letter form, e.g. onDoubleClick maps to
// the browser's "dblclick" event, not "doubleclick".
var eventNameOverrides = map[string]string{
	"onDoubleClick": "ondblclick",
}

// lowerEventNames rewrites JSX/Html-style camelCase event property names
// (onClick, onMouseOver, ...) to their lowercase DOM event-handler names
// (onclick, onmouseover, ...), applying the fixed overrides first.
func lowerEventNames(top *ast.CodeTopLevel) {
	walkSegments(top.Segments, func(el *ast.Element) {
		if el.Dialect == ast.Component {
			return
		}
		for _, p := range el.Properties {
			dp, ok := p.(*ast.DynamicProperty)
			if !ok {
				continue
			}
			if override, ok := eventNameOverrides[dp.Name]; ok {
				dp.Name = override
				continue
			}
			if eventPropertyName.MatchString(dp.Name) {
				dp.Name = "on" + strings.ToLower(dp.Name[2:])
			}
		}
	})
}
