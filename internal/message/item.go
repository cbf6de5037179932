package message

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Item is one parsed order line. ProductName is the user's literal text for
// the line with quantity and price tokens removed; it is never rewritten to
// a catalog name.
type Item struct {
	ProductName      string
	Quantity         int
	UnitPrice        int64
	HasExplicitPrice bool
}

var (
	qtyUnitRe   = regexp.MustCompile(`(?i)\b(\d+)\s*(?:pcs|pc|x|buah|unit|pax|biji|lembar)\b`)
	qtyLetterRe = regexp.MustCompile(`(?i)\bx\s*(\d+)\b`)

	priceLabelRe = regexp.MustCompile(`(?i)\b(?:harga|price)\b\s*:?\s*(?:rp\.?\s*)?(\d[\d.,]*)\s*(rb)?\b`)
	priceAtRe    = regexp.MustCompile(`@\s*(?:[Rr]p\.?\s*)?(\d[\d.,]*)\s*([Rr][Bb])?\b`)
)

type tokenSpan struct{ start, end int }

// ParseItemLine reads one item line. A line with no quantity token defaults
// to quantity 1, and a line with no price token leaves the price unresolved
// for the catalog to fill in.
func ParseItemLine(line string) (Item, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Item{}, false
	}

	item := Item{Quantity: 1}
	var spans []tokenSpan

	if m := qtyUnitRe.FindStringSubmatchIndex(line); m != nil {
		qty, err := strconv.Atoi(line[m[2]:m[3]])
		if err == nil && qty > 0 {
			item.Quantity = qty
		}
		spans = append(spans, tokenSpan{m[0], m[1]})
	} else if m := qtyLetterRe.FindStringSubmatchIndex(line); m != nil {
		qty, err := strconv.Atoi(line[m[2]:m[3]])
		if err == nil && qty > 0 {
			item.Quantity = qty
		}
		spans = append(spans, tokenSpan{m[0], m[1]})
	}

	if m := priceLabelRe.FindStringSubmatchIndex(line); m != nil {
		if price, ok := parseAmount(line[m[2]:m[1]]); ok {
			item.UnitPrice = price
			item.HasExplicitPrice = true
		}
		spans = append(spans, tokenSpan{m[0], m[1]})
	} else if m := priceAtRe.FindStringSubmatchIndex(line); m != nil {
		if price, ok := parseAmount(line[m[2]:m[1]]); ok {
			item.UnitPrice = price
			item.HasExplicitPrice = true
		}
		spans = append(spans, tokenSpan{m[0], m[1]})
	}

	item.ProductName = nameAroundTokens(line, spans)
	if item.ProductName == "" {
		return Item{}, false
	}
	return item, true
}

// nameAroundTokens returns the first non-empty text segment of line outside
// the recognized token spans, preserving the user's literal text.
func nameAroundTokens(line string, spans []tokenSpan) string {
	if len(spans) == 0 {
		return strings.TrimSpace(line)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	cursor := 0
	for _, span := range spans {
		if segment := trimSegment(line[cursor:span.start]); segment != "" {
			return segment
		}
		cursor = span.end
	}
	return trimSegment(line[cursor:])
}

func trimSegment(segment string) string {
	return strings.Trim(segment, " \t-,:;")
}
