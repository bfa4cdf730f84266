// Package itinerary turns a generated Markdown itinerary into a display
// document: emphasis is stripped and the budget section gets currency
// conversions appended next to each dollar amount.
package itinerary

import "strings"

// EmphasisDelimiter is the Markdown bold marker removed for plain display.
const EmphasisDelimiter = "**"

// StripEmphasis removes every emphasis delimiter. It is idempotent.
func StripEmphasis(s string) string {
	return strings.ReplaceAll(s, EmphasisDelimiter, "")
}
