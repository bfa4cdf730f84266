package interpreter

import "regexp"

const months = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

// Each family contributes its matches in textual order; families are
// concatenated in this order with no deduplication across them.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}(?:st|nd|rd|th)?\s+` + months + `\s+\d{4}`),
	regexp.MustCompile(`(?i)` + months + `\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
}

// ExtractDates returns raw date substrings; nothing is parsed.
func ExtractDates(text string) []string {
	out := []string{}
	for _, re := range datePatterns {
		out = append(out, re.FindAllString(text, -1)...)
	}
	return out
}
