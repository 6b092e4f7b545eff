package sourcemap

// This package deliberately does NOT use the conventional source-map
// Base64 VLQ alphabet (A-Za-z0-9+/ with the continuation bit in the usual
// place). §4.5 calls for a variant that splits the alphabet in half and
// swaps which half marks "more digits follow": continuation digits come
// from the back half of the usual range (lowercase g-z, then 0-9, then
// +/), and the terminal digit of each value comes from the front half
// (A-Z, then a-f). This was flagged as an open question - reproduce the
// spec's bit-for-bit scheme versus emit a standard, more widely
// interoperable VLQ - and resolved in favor of matching the spec exactly
// (see DESIGN.md); consumers that expect the conventional alphabet will
// need to decode with this package, not a generic source-map library.
const (
	continuationAlphabet = "ghijklmnopqrstuvwxyz0123456789+/"
	finalAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdef"
)

// encodeVLQ appends the zig-zag VLQ encoding of value to dst using the
// alphabet split described above, returning the extended slice.
func encodeVLQ(dst []byte, value int) []byte {
	v := value << 1
	if value < 0 {
		v = (-value << 1) | 1
	}
	for {
		digit := v & 0x1f
		v >>= 5
		if v > 0 {
			dst = append(dst, continuationAlphabet[digit])
		} else {
			dst = append(dst, finalAlphabet[digit])
			break
		}
	}
	return dst
}

// encodeVLQSegment encodes a full run of VLQ fields (as used for one
// mapping segment: generatedColumn, sourceIndex, sourceLine, sourceColumn,
// nameIndex) with no separators, matching how a single mapping segment is
// packed in the "mappings" string.
func encodeVLQSegment(fields ...int) string {
	var buf []byte
	for _, f := range fields {
		buf = encodeVLQ(buf, f)
	}
	return string(buf)
}
