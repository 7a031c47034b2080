package youtube

import (
	"regexp"
	"strconv"
)

// Compact ISO-8601 duration as returned by the videos endpoint, e.g.
// "PT1M2S", "PT59S", "PT2H3M4S". Each component may be absent.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts a compact duration token into total whole seconds.
// ok is false when the token does not match the grammar; a bare "PT" parses
// to zero.
func ParseDuration(iso string) (seconds int, ok bool) {
	m := durationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0, false
	}

	h := atoiOrZero(m[1])
	min := atoiOrZero(m[2])
	s := atoiOrZero(m[3])

	return h*3600 + min*60 + s, true
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
