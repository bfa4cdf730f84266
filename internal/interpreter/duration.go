package interpreter

import (
	"regexp"
	"strconv"
)

type durationRule struct {
	re         *regexp.Regexp
	multiplier int
}

// Tried in order; the first rule matching anywhere wins, even when a later
// rule matches earlier in the text ("3 nights, 4 days" is 4).
var durationRules = []durationRule{
	{regexp.MustCompile(`(?i)(\d+)[\s-]+days?`), 1},
	{regexp.MustCompile(`(?i)(\d+)[\s-]+weeks?`), 7},
	{regexp.MustCompile(`(?i)(\d+)[\s-]+nights?`), 1},
}

// ExtractDuration returns the trip length in days, or nil when no duration
// phrase is present.
func ExtractDuration(text string) *int {
	for _, r := range durationRules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// overflowing digit runs are not a duration
			continue
		}
		days := n * r.multiplier
		return &days
	}
	return nil
}
