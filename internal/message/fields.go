// Package message turns a free-form order message, mixing English and
// Indonesian vocabulary, into structured order facts. Everything in this
// package is a pure function of its input.
package message

import (
	"regexp"
	"strings"
)

// DirectiveKind tags the recognized directive families.
type DirectiveKind string

const (
	DirectiveNotes    DirectiveKind = "notes"
	DirectiveDiscount DirectiveKind = "discount"
	DirectivePayment  DirectiveKind = "payment"
	DirectiveShipping DirectiveKind = "shipping"
	DirectiveContact  DirectiveKind = "contact"
	DirectiveItem     DirectiveKind = "item"
)

// Fields is the extractor output: raw substrings grouped per directive, with
// item lines left verbatim for the item parser.
type Fields struct {
	ItemLines         []string
	DiscountDirective string
	PaymentDirective  string
	ShippingDirective string
	CustomNotes       string
	ContactLines      []string
}

var (
	notesRe = regexp.MustCompile(`(?i)^\s*(?:catatan|notes?)\s*:\s*(.*)$`)

	discountRe = regexp.MustCompile(`(?i)\b(?:discount|diskon|potongan)\b\s*:?\s*\d[\d.,]*\s*(?:%|persen|rb)?`)
	dpRe       = regexp.MustCompile(`(?i)\bdp\b\.?\s*:?\s*\d[\d.,]*\s*(?:%|persen)?`)
	dueRe      = regexp.MustCompile(`(?i)\b(?:jatuh\s+tempo|due(?:\s+date)?)\b\s*:?\s*[0-9]{1,4}[-/][0-9]{1,2}[-/][0-9]{1,4}`)
	shippingRe = regexp.MustCompile(`(?i)\b(?:ongkir|ongkos\s+kirim|shipping)\b\s*:?\s*\d[\d.,]*\s*(?:rb)?`)
)

// inlineMatcher recognizes one directive family inside a line. Matchers run
// in a fixed order so a line mixing an item with trailing directives is split
// deterministically.
type inlineMatcher struct {
	kind DirectiveKind
	re   *regexp.Regexp
}

var inlineMatchers = []inlineMatcher{
	{DirectiveDiscount, discountRe},
	{DirectivePayment, dpRe},
	{DirectivePayment, dueRe},
	{DirectiveShipping, shippingRe},
}

// ExtractFields splits a raw message into its semantic fields. Extraction
// never fails: a message with no recognizable item lines yields an empty item
// list and downstream stages report the empty-invoice condition.
func ExtractFields(raw string) Fields {
	var fields Fields
	notesOpen := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			notesOpen = false
			continue
		}

		if m := notesRe.FindStringSubmatch(line); m != nil {
			appendNotes(&fields, strings.TrimSpace(m[1]))
			notesOpen = true
			continue
		}

		remainder := line
		matchedInline := false
		for _, matcher := range inlineMatchers {
			loc := matcher.re.FindStringIndex(remainder)
			if loc == nil {
				continue
			}
			matchedInline = true
			text := strings.TrimSpace(remainder[loc[0]:loc[1]])
			remainder = strings.TrimSpace(remainder[:loc[0]] + " " + remainder[loc[1]:])

			switch matcher.kind {
			case DirectiveDiscount:
				// Only the first discount directive counts; discounts are
				// never compounded across directives.
				if fields.DiscountDirective == "" {
					fields.DiscountDirective = text
				}
			case DirectivePayment:
				if fields.PaymentDirective == "" {
					fields.PaymentDirective = text
				} else {
					fields.PaymentDirective += " " + text
				}
			case DirectiveShipping:
				if fields.ShippingDirective == "" {
					fields.ShippingDirective = text
				}
			}
		}

		remainder = strings.Trim(remainder, " \t-,;")
		if remainder == "" {
			continue
		}

		if isContactLine(remainder) {
			fields.ContactLines = append(fields.ContactLines, remainder)
			notesOpen = false
			continue
		}

		if notesOpen && !matchedInline {
			appendNotes(&fields, remainder)
			continue
		}
		notesOpen = false

		fields.ItemLines = append(fields.ItemLines, remainder)
	}

	return fields
}

func appendNotes(fields *Fields, text string) {
	if text == "" {
		return
	}
	if fields.CustomNotes == "" {
		fields.CustomNotes = text
		return
	}
	fields.CustomNotes += "\n" + text
}
