package interpreter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// travelPhrases are tried in this order; the order decides result order.
var travelPhrases = []string{
	"visit", "travel to", "go to", "explore", "see", "vacation in", "holiday in", "trip to",
}

var phrasePatterns = compilePhrases(travelPhrases)

func compilePhrases(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(p)+`\s+([A-Za-z\s,]+)`))
	}
	return out
}

// connectors end a place name inside a captured run ("Paris for ...").
var connectors = map[string]struct{}{
	"for": {}, "in": {}, "with": {}, "during": {}, "next": {}, "this": {}, "on": {},
	"from": {}, "at": {}, "by": {}, "over": {}, "around": {}, "until": {}, "to": {},
}

// fallback stoplist, compared lowercased
var stopwords = map[string]struct{}{
	"plan": {}, "trip": {}, "day": {}, "week": {}, "itinerary": {},
}

var (
	trailingPunct = regexp.MustCompile(`[,.!?]+$`)
	andSplit      = regexp.MustCompile(`(?i),|\band\b`)
)

// ExtractDestinations finds candidate place names after travel-intent phrases,
// falling back to capitalized words when no phrase matches.
func ExtractDestinations(text string) []string {
	var found []string
	for _, re := range phrasePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			found = append(found, refine(m[1])...)
		}
	}
	if len(found) == 0 {
		found = capitalizedWords(text)
	}
	return dedup(found)
}

// refine splits a captured run into place names and drops the trailing
// clause that follows the first connector word.
func refine(run string) []string {
	var out []string
	for _, part := range andSplit.Split(run, -1) {
		if startsWithPhrase(part) {
			// "... and see X": the phrase pass captures X on its own
			continue
		}
		words := strings.Fields(part)
		for i, w := range words {
			if _, ok := connectors[strings.ToLower(w)]; ok && i > 0 {
				words = words[:i]
				break
			}
		}
		if len(words) > 0 {
			if _, ok := connectors[strings.ToLower(words[0])]; ok {
				continue
			}
		}
		name := cleanName(strings.Join(words, " "))
		if len(name) > 2 {
			out = append(out, name)
		}
	}
	return out
}

func startsWithPhrase(part string) bool {
	p := strings.ToLower(strings.Join(strings.Fields(part), " "))
	for _, ph := range travelPhrases {
		if strings.HasPrefix(p, ph+" ") {
			return true
		}
	}
	return false
}

func capitalizedWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) || len(w) <= 3 {
			continue
		}
		if _, stop := stopwords[strings.ToLower(w)]; stop {
			continue
		}
		if name := cleanName(w); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func cleanName(s string) string {
	return trailingPunct.ReplaceAllString(strings.TrimSpace(s), "")
}

func dedup(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
