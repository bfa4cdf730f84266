package itinerary

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"travel_planner/internal/currency"
)

// dollar amounts with optional thousands separators and fraction
var amountPattern = regexp.MustCompile(`\$\d+(?:,\d+)*(?:\.\d+)?`)

type Annotator struct {
	table *currency.Table
}

func NewAnnotator(t *currency.Table) *Annotator {
	return &Annotator{table: t}
}

// Annotate appends "(<converted>)" after every bare dollar amount in span.
// USD and unknown targets return span unchanged. Amounts that already carry
// an annotation, and amounts that are part of a prefixed symbol such as A$ or
// C$, are left alone, so annotating twice does not double-wrap.
func (a *Annotator) Annotate(span string, target currency.Code) string {
	if target == currency.Base {
		return span
	}
	if _, ok := a.table.Lookup(target); !ok {
		log.Warn().Str("currency", string(target)).Msg("annotate: unknown currency, leaving budget as-is")
		return span
	}

	bare := map[string]struct{}{}
	keep := map[string]struct{}{}
	for _, m := range amountPattern.FindAllStringIndex(span, -1) {
		lit := span[m[0]:m[1]]
		switch {
		case prefixedByLetter(span, m[0]):
			_, size := utf8.DecodeLastRuneInString(span[:m[0]])
			keep[span[m[0]-size:m[1]]] = struct{}{}
		case a.annotated(span, m[1]) != "":
			keep[lit+a.annotated(span, m[1])] = struct{}{}
		default:
			bare[lit] = struct{}{}
		}
	}
	if len(bare) == 0 {
		return span
	}

	// Longest literal first: strings.Replacer tries pairs in argument order
	// at each position, so "$1,200" wins over "$1" and already annotated or
	// symbol-prefixed text maps to itself.
	olds := make([]string, 0, len(bare)+len(keep))
	for k := range bare {
		olds = append(olds, k)
	}
	for k := range keep {
		olds = append(olds, k)
	}
	sort.Slice(olds, func(i, j int) bool {
		if len(olds[i]) != len(olds[j]) {
			return len(olds[i]) > len(olds[j])
		}
		return olds[i] < olds[j]
	})

	pairs := make([]string, 0, 2*len(olds))
	for _, old := range olds {
		if _, ok := keep[old]; ok {
			pairs = append(pairs, old, old)
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(old[1:], ",", ""), 64)
		if err != nil {
			log.Debug().Str("amount", old).Err(err).Msg("annotate: skipping unparsable amount")
			pairs = append(pairs, old, old)
			continue
		}
		converted, err := a.table.Convert(v, target)
		if err != nil {
			pairs = append(pairs, old, old)
			continue
		}
		pairs = append(pairs, old, old+" ("+converted+")")
	}
	return strings.NewReplacer(pairs...).Replace(span)
}

// annotated returns the " (<symbol>" marker following position end, or "".
// The base symbol never marks a conversion, and the symbol must be followed
// by a digit, so "$200 ($150 for kids)" holds two bare amounts.
func (a *Annotator) annotated(s string, end int) string {
	rest := s[end:]
	if !strings.HasPrefix(rest, " (") {
		return ""
	}
	base, _ := a.table.Lookup(currency.Base)
	for _, sym := range a.table.Symbols() {
		if sym == base.Symbol || !strings.HasPrefix(rest[2:], sym) {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest[2+len(sym):]); unicode.IsDigit(r) {
			return " (" + sym
		}
	}
	return ""
}

func prefixedByLetter(s string, start int) bool {
	if start == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:start])
	return unicode.IsLetter(r)
}
