package sourcemap

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStripsMarks(t *testing.T) {
	generated := "\x001,1\x00const x = 1;\n\x002,1\x00const y = 2;"
	clean, mapJSON, err := Extract(generated, "in.js", "out.js", "const x = 1;\nconst y = 2;")
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\nconst y = 2;", clean)
	assert.NotContains(t, clean, "\x00")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(mapJSON), &doc))
	assert.Equal(t, float64(3), doc["version"])
	assert.Equal(t, "out.js", doc["file"])
	if diff := cmp.Diff([]interface{}{"in.js"}, doc["sources"]); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNoMarksProducesEmptyMappings(t *testing.T) {
	clean, mapJSON, err := Extract("plain code", "in.js", "out.js", "plain code")
	require.NoError(t, err)
	assert.Equal(t, "plain code", clean)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(mapJSON), &doc))
	assert.Equal(t, "", doc["mappings"])
}

func TestEncodeVLQRoundTrip(t *testing.T) {
	cases := []int{0, 1, -1, 15, -15, 1000, -1000}
	for _, c := range cases {
		encoded := encodeVLQSegment(c)
		decoded, n := decodeVLQ(encoded)
		if n != len(encoded) {
			t.Fatalf("value %d: decoded %d of %d bytes", c, n, len(encoded))
		}
		if decoded != c {
			t.Fatalf("value %d round-tripped to %d (encoded %q)", c, decoded, encoded)
		}
	}
}

// decodeVLQ mirrors encodeVLQ's custom alphabet split, used only by the
// round-trip test above to check the encoder against itself.
func decodeVLQ(s string) (value, consumed int) {
	result := 0
	shift := uint(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		var digit int
		var final bool
		if idx := indexByte(continuationAlphabet, c); idx >= 0 {
			digit = idx
			final = false
		} else if idx := indexByte(finalAlphabet, c); idx >= 0 {
			digit = idx
			final = true
		}
		result |= digit << shift
		shift += 5
		if final {
			consumed = i + 1
			break
		}
	}
	sign := result & 1
	v := result >> 1
	if sign == 1 {
		v = -v
	}
	return v, consumed
}

func indexByte(alphabet string, c byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return i
		}
	}
	return -1
}
