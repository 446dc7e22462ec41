package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// unitSpans maps duration token suffixes to their span.
var unitSpans = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseSpan converts a compound human-readable duration such as
// "1w 2d 3h 30m" into a single time.Duration. Tokens are <integer><unit>
// separated by whitespace; units are s, m, h, d, w. A malformed or
// unknown token rejects the whole value rather than being skipped.
func ParseSpan(s string) (time.Duration, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty duration")
	}

	var total time.Duration
	for _, tok := range fields {
		span, ok := unitSpans[tok[len(tok)-1]]
		if !ok {
			return 0, fmt.Errorf("duration %q: unknown unit in token %q", s, tok)
		}
		n, err := strconv.ParseUint(tok[:len(tok)-1], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("duration %q: malformed token %q", s, tok)
		}
		total += time.Duration(n) * span
	}
	return total, nil
}
