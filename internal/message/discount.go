package message

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DiscountKind tags the discount variants.
type DiscountKind string

const (
	DiscountNone       DiscountKind = "none"
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// DiscountSpec is an immutable discount directive. It is created once per
// message and applied to the subtotal after all item lines are summed.
type DiscountSpec struct {
	Kind    DiscountKind
	Percent float64
	Amount  int64
}

var discountValueRe = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*(%|persen|rb)?`)

// ParseDiscount interprets a discount directive. Recognized forms: "discount
// 10%", "diskon 15 persen", "potongan 20%", "discount 25rb", and a bare
// amount. A missing or unparseable directive degrades to DiscountNone rather
// than failing the message.
func ParseDiscount(directive string) DiscountSpec {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return DiscountSpec{Kind: DiscountNone}
	}

	m := discountValueRe.FindStringSubmatch(directive)
	if m == nil {
		return DiscountSpec{Kind: DiscountNone}
	}

	digits := strings.NewReplacer(".", "", ",", "").Replace(m[1])
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return DiscountSpec{Kind: DiscountNone}
	}

	switch strings.ToLower(m[2]) {
	case "%", "persen":
		percent := float64(value)
		if percent > 100 {
			percent = 100
		}
		return DiscountSpec{Kind: DiscountPercentage, Percent: percent}
	case "rb":
		return DiscountSpec{Kind: DiscountFixed, Amount: value * 1000}
	default:
		return DiscountSpec{Kind: DiscountFixed, Amount: value}
	}
}

// AmountFor computes the discount amount against a pre-discount subtotal.
// Percentages are taken of the full subtotal; fixed amounts are clamped to
// [0, subtotal].
func (s DiscountSpec) AmountFor(subtotal int64) int64 {
	switch s.Kind {
	case DiscountPercentage:
		return int64(math.Round(float64(subtotal) * s.Percent / 100))
	case DiscountFixed:
		if s.Amount < 0 {
			return 0
		}
		if s.Amount > subtotal {
			return subtotal
		}
		return s.Amount
	default:
		return 0
	}
}

// Type reports the discount type as carried on the invoice. The absence of a
// discount is reported as "fixed" by convention.
func (s DiscountSpec) Type() string {
	if s.Kind == DiscountPercentage {
		return string(DiscountPercentage)
	}
	return string(DiscountFixed)
}
