// Package sourcemap strips the inline location markers the generator
// embeds in its output and turns them into a source map: a post-generation
// pass, not something the generator computes as it goes (§4.5).
package sourcemap

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var markPattern = regexp.MustCompile("\x00(\\d+),(\\d+)\x00")

// mapping is one generated-position -> source-position pair, in the order
// marks were encountered in the generated text.
type mapping struct {
	genLine, genCol int
	srcLine, srcCol int
}

// Extract scans generated for embedded location marks, strips them to
// produce the final clean source text, and builds the accompanying V3
// source map JSON document. sourcefile/targetfile/sourceContent populate
// the map's "sources"/"file"/"sourcesContent" fields.
func Extract(generated, sourcefile, targetfile, sourceContent string) (clean string, mapJSON string, err error) {
	var b strings.Builder
	var mappings []mapping

	genLine, genCol := 1, 1
	matches := markPattern.FindAllStringSubmatchIndex(generated, -1)
	pos := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(generated[pos:start])
		advance(generated[pos:start], &genLine, &genCol)

		srcLine, _ := strconv.Atoi(generated[m[2]:m[3]])
		srcCol, _ := strconv.Atoi(generated[m[4]:m[5]])
		mappings = append(mappings, mapping{genLine: genLine, genCol: genCol, srcLine: srcLine, srcCol: srcCol})

		pos = end
	}
	b.WriteString(generated[pos:])

	doc := document{
		Version:        3,
		File:           targetfile,
		Sources:        []string{sourcefile},
		SourcesContent: []string{sourceContent},
		Names:          []string{},
		Mappings:       encodeMappings(mappings),
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", "", err
	}
	return b.String(), string(out), nil
}

func advance(s string, line, col *int) {
	for _, r := range s {
		if r == '\n' {
			*line++
			*col = 1
		} else {
			*col++
		}
	}
}

type document struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// encodeMappings renders the mapping list as the V3 "mappings" string:
// groups per generated source line, separated by ';'; segments within a
// line separated by ','; each segment's fields delta-encoded against the
// previous segment (generated column resets every line; source
// line/column are cumulative across the whole map, since there is always
// exactly one source file here).
func encodeMappings(ms []mapping) string {
	if len(ms) == 0 {
		return ""
	}
	var out strings.Builder
	curLine := 1
	prevGenCol := 0
	prevSrcLine, prevSrcCol := 0, 0
	firstInLine := true

	for _, m := range ms {
		for curLine < m.genLine {
			out.WriteByte(';')
			curLine++
			prevGenCol = 0
			firstInLine = true
		}
		if !firstInLine {
			out.WriteByte(',')
		}
		firstInLine = false

		// Source positions are stored 1-indexed in the AST; source maps
		// record 0-indexed lines/columns.
		srcLine := m.srcLine - 1
		srcCol := m.srcCol - 1

		out.WriteString(encodeVLQSegment(
			m.genCol-1-prevGenCol,
			0,
			srcLine-prevSrcLine,
			srcCol-prevSrcCol,
		))
		prevGenCol = m.genCol - 1
		prevSrcLine = srcLine
		prevSrcCol = srcCol
	}
	return out.String()
}
