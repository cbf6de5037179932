package message

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PaymentTerms captures a down-payment directive: an upfront percentage of
// the grand total, optionally with a due date for the remaining balance.
type PaymentTerms struct {
	HasDownPayment bool
	DownPaymentPct float64
	DueDate        *time.Time
}

var (
	dpValueRe  = regexp.MustCompile(`(?i)\bdp\b\.?\s*:?\s*(\d[\d.,]*)\s*(?:%|persen)?`)
	dueValueRe = regexp.MustCompile(`(?i)\b(?:jatuh\s+tempo|due(?:\s+date)?)\b\s*:?\s*([0-9]{1,4}[-/][0-9]{1,2}[-/][0-9]{1,4})`)
)

// Calendar layouts accepted for due dates. Dates pass through as parsed; no
// timezone conversion happens here.
var dueDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// ParsePaymentTerms interprets a payment-schedule directive such as
// "DP 30%" or "DP 50 persen jatuh tempo 2026-09-15". A bare "DP 30" reads as
// a percentage. An absent or unreadable directive yields zero terms.
func ParsePaymentTerms(directive string) PaymentTerms {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return PaymentTerms{}
	}

	var terms PaymentTerms
	if m := dpValueRe.FindStringSubmatch(directive); m != nil {
		digits := strings.NewReplacer(".", "", ",", "").Replace(m[1])
		value, err := strconv.ParseInt(digits, 10, 64)
		if err == nil && value > 0 {
			pct := float64(value)
			if pct > 100 {
				pct = 100
			}
			terms.HasDownPayment = true
			terms.DownPaymentPct = pct
		}
	}

	if m := dueValueRe.FindStringSubmatch(directive); m != nil {
		if due, ok := parseDueDate(m[1]); ok {
			terms.DueDate = &due
		}
	}

	return terms
}

func parseDueDate(text string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseShipping reads a shipping-fee directive ("ongkir 10rb", "shipping
// 15000"). A missing or unreadable directive costs nothing.
func ParseShipping(directive string) int64 {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return 0
	}
	amount, ok := parseAmount(stripShippingKeyword(directive))
	if !ok || amount < 0 {
		return 0
	}
	return amount
}

var shippingKeywordRe = regexp.MustCompile(`(?i)\b(?:ongkir|ongkos\s+kirim|shipping)\b\s*:?\s*`)

func stripShippingKeyword(directive string) string {
	return shippingKeywordRe.ReplaceAllString(directive, "")
}
