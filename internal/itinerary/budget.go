package itinerary

import "strings"

const headingMarker = "#"

// BudgetSpan is the budget section of a document: from the budget heading
// line up to, not including, the next heading line. Start and End are byte
// offsets into the searched document.
type BudgetSpan struct {
	Start int
	End   int
	Text  string
}

// LocateBudgetSpan finds the first heading line mentioning "budget" (any
// case). ok is false when the document has no such heading; that is a normal
// outcome.
func LocateBudgetSpan(doc string) (span BudgetSpan, ok bool) {
	offset := 0
	start := -1
	for _, line := range strings.SplitAfter(doc, "\n") {
		if start < 0 {
			if strings.Contains(strings.ToLower(line), "budget") && strings.Contains(line, headingMarker) {
				start = offset
			}
		} else if strings.HasPrefix(line, headingMarker) {
			return newSpan(doc, start, offset), true
		}
		offset += len(line)
	}
	if start < 0 {
		return BudgetSpan{}, false
	}
	return newSpan(doc, start, len(doc)), true
}

func newSpan(doc string, start, end int) BudgetSpan {
	return BudgetSpan{Start: start, End: end, Text: StripEmphasis(doc[start:end])}
}
