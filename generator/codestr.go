package generator

import "strings"

// codeStr renders s as a single-quoted string literal suitable for
// splicing into generated source: backslashes and single quotes are
// escaped, and literal newlines become an escaped line continuation so
// multi-line text content doesn't break the surrounding statement.
func codeStr(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString("\\\n")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// hasSignal is the "no apparent signals" heuristic of §4.4: embedded code
// is treated as statically evaluable exactly once when it contains no '('
// at all (no calls, so nothing to re-observe), or when it is itself a lone
// function head (already a callback the runtime can call directly, so
// wrapping it again would double-wrap). Anything else is assumed to read
// reactive state and is wrapped in runtime.S so it re-runs.
func hasSignal(code string) bool {
	trimmed := strings.TrimSpace(code)
	if !strings.Contains(trimmed, "(") {
		return false
	}
	if isLoneFunctionHead(trimmed) {
		return false
	}
	return true
}

// isLoneFunctionHead reports whether code is nothing but a single
// function expression or arrow function: `function(...) {...}` or
// `(...) => ...` / `ident => ...`, with no surrounding expression.
func isLoneFunctionHead(code string) bool {
	if strings.HasPrefix(code, "function ") || strings.HasPrefix(code, "function(") {
		return true
	}
	if strings.HasPrefix(code, "(") {
		if end := strings.Index(code, ")"); end > 0 && strings.HasPrefix(strings.TrimSpace(code[end+1:]), "=>") {
			return true
		}
	}
	if idx := strings.Index(code, "=>"); idx > 0 && idx < 40 && !strings.ContainsAny(code[:idx], "(){}[];,") {
		return true
	}
	return false
}
