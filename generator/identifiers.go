package generator

import (
	"regexp"
	"strconv"
)

// rootID is the fixed identifier the root element of a generated IIFE is
// always bound to.
const rootID = "__"

var underscoreRun = regexp.MustCompile(`_{2,}`)

// identGen mints identifiers for the nested elements and inserts declared
// within one IIFE: a child at its n-th (0-indexed) occurrence under a given
// parent id and tag is named parentID + "_" + tag + (n+1). Counting is
// scoped per (parentID, tag) pair so siblings with the same tag under the
// same parent get distinct suffixes.
type identGen struct {
	counts map[string]int
}

func newIdentGen() *identGen {
	return &identGen{counts: map[string]int{}}
}

// Next returns the identifier for the next child named tag under parentID,
// collapsing the run of underscores produced when parentID already ends in
// "_" - e.g. root "__" plus a first div child folds "___div1" down to
// "__div1" instead of leaving the tripled underscore.
func (g *identGen) Next(parentID, tag string) string {
	key := parentID + "\x00" + tag
	n := g.counts[key]
	g.counts[key] = n + 1
	id := parentID + "_" + tag + strconv.Itoa(n+1)
	return underscoreRun.ReplaceAllString(id, "__")
}
