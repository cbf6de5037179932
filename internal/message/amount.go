package message

import (
	"regexp"
	"strconv"
	"strings"
)

var amountRe = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*(rb)?`)

// parseAmount reads a currency amount written with optional thousand
// separators and the Indonesian "rb" (ribu, thousand) suffix. "100.000" and
// "100000" both read as 100000; "25rb" reads as 25000.
func parseAmount(text string) (int64, bool) {
	m := amountRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	digits := strings.NewReplacer(".", "", ",", "").Replace(m[1])
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(m[2], "rb") {
		value *= 1000
	}
	return value, true
}
