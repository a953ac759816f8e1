package health

import (
	"fmt"
	"strconv"
	"strings"
)

// parseHex parses #rgb or #rrggbb into channel values. Returns ok=false for
// anything else; callers fall back to the input unchanged.
func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// BlendHex composites fg at the given alpha over bg and returns the result
// as #rrggbb. Invalid input passes through as the foreground value.
func BlendHex(fg, bg string, alpha float64) string {
	fr, fgc, fb, ok := parseHex(fg)
	if !ok {
		return fg
	}
	br, bgc, bb, ok := parseHex(bg)
	if !ok {
		return fg
	}
	mix := func(f, b uint8) uint8 {
		return uint8(float64(f)*alpha + float64(b)*(1-alpha) + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(fr, br), mix(fgc, bgc), mix(fb, bb))
}
