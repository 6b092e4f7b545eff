package transform

import "github.com/jsxcompile/jsxc/ast"

// dedupeProperties removes earlier StaticProperty/DynamicProperty entries
// that share a name with a later one on the same element, keeping the
// last occurrence (later wins, matching how repeated HTML attributes are
// conventionally resolved). SpreadProperty and StyleProperty are exempt
// per ast.PropertyName and may repeat freely.
func dedupeProperties(top *ast.CodeTopLevel) {
	walkSegments(top.Segments, func(el *ast.Element) {
		keepIndex := map[string]int{}
		for i, p := range el.Properties {
			name := ast.PropertyName(p)
			if name == "" {
				continue
			}
			keepIndex[name] = i
		}
		var kept []ast.Property
		for i, p := range el.Properties {
			name := ast.PropertyName(p)
			if name == "" || keepIndex[name] == i {
				kept = append(kept, p)
			}
		}
		el.Properties = kept
	})
}
