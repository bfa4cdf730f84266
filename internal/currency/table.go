package currency

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Code string

const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	INR Code = "INR"
	AUD Code = "AUD"
	CAD Code = "CAD"
)

// Base is the unit every rate in a Table is expressed against.
const Base = USD

var ErrUnknownCurrency = errors.New("currency: unknown code")

// Entry describes one currency relative to USD.
type Entry struct {
	Rate             float64 `json:"rate"`
	Symbol           string  `json:"symbol"`
	FractionalDigits int     `json:"fractional_digits"`
}

// Table is read-only after construction and safe to share across goroutines.
type Table struct {
	entries map[Code]Entry
	order   []Code
}

// approximations; rates are not fetched live
var defaultEntries = []struct {
	code  Code
	entry Entry
}{
	{USD, Entry{Rate: 1.0, Symbol: "$", FractionalDigits: 2}},
	{EUR, Entry{Rate: 0.91, Symbol: "€", FractionalDigits: 2}},
	{GBP, Entry{Rate: 0.78, Symbol: "£", FractionalDigits: 2}},
	{JPY, Entry{Rate: 151.23, Symbol: "¥", FractionalDigits: 0}},
	{INR, Entry{Rate: 83.42, Symbol: "₹", FractionalDigits: 0}},
	{AUD, Entry{Rate: 1.49, Symbol: "A$", FractionalDigits: 2}},
	{CAD, Entry{Rate: 1.35, Symbol: "C$", FractionalDigits: 2}},
}

// Default returns the built-in table.
func Default() *Table {
	t := &Table{entries: make(map[Code]Entry, len(defaultEntries))}
	for _, d := range defaultEntries {
		t.entries[d.code] = d.entry
		t.order = append(t.order, d.code)
	}
	return t
}

// NewTable builds a table from explicit entries. Codes are listed in the
// order given by codes; entries without a matching code are ignored.
func NewTable(codes []Code, entries map[Code]Entry) (*Table, error) {
	t := &Table{entries: make(map[Code]Entry, len(codes))}
	for _, c := range codes {
		e, ok := entries[c]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no entry", ErrUnknownCurrency, c)
		}
		if e.Rate <= 0 {
			return nil, fmt.Errorf("currency: %s rate must be positive, got %v", c, e.Rate)
		}
		t.entries[c] = e
		t.order = append(t.order, c)
	}
	if _, ok := t.entries[Base]; !ok {
		return nil, fmt.Errorf("currency: table must contain %s", Base)
	}
	return t, nil
}

func (t *Table) Lookup(c Code) (Entry, bool) {
	e, ok := t.entries[c]
	return e, ok
}

func (t *Table) Codes() []Code {
	out := make([]Code, len(t.order))
	copy(out, t.order)
	return out
}

// Symbols returns every display symbol in the table, in table order.
func (t *Table) Symbols() []string {
	out := make([]string, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, t.entries[c].Symbol)
	}
	return out
}

// ParseCode accepts codes in any case ("eur", " EUR ").
func (t *Table) ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := t.entries[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// Label renders a selector label such as "EUR (€)".
func (t *Table) Label(c Code) string {
	e, ok := t.entries[c]
	if !ok {
		return string(c)
	}
	return fmt.Sprintf("%s (%s)", c, e.Symbol)
}

// Convert turns a USD amount into the target currency and formats it with the
// target's symbol, thousands separators and fractional-digit policy.
// USD is formatted as-is with two digits.
func (t *Table) Convert(amountUSD float64, target Code) (string, error) {
	e, ok := t.entries[target]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCurrency, target)
	}
	if target == Base {
		return e.Symbol + group(amountUSD, 2), nil
	}
	return e.Symbol + group(amountUSD*e.Rate, e.FractionalDigits), nil
}

// group formats v with comma thousands separators and the given precision.
func group(v float64, digits int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf(fmt.Sprintf("%%.%df", digits), v)
}
