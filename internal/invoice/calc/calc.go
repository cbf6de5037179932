// Package calc derives invoice money figures. Every function is a pure,
// deterministic function of its inputs: computing twice on identical inputs
// yields identical results.
package calc

import (
	"math"

	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"github.com/fairmog/tagihin/internal/message"
)

// Line is a priced order line entering the calculation.
type Line struct {
	Quantity  int
	UnitPrice int64
}

// Subtotal sums quantity times unit price across all lines. Summation always
// happens before any discount is applied.
func Subtotal(lines []Line) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += int64(line.Quantity) * line.UnitPrice
	}
	return subtotal
}

// Compute produces the invoice calculations. Tax applies to the discounted
// subtotal; the grand total is clamped at zero.
func Compute(subtotal int64, spec message.DiscountSpec, taxEnabled bool, taxRatePercent float64, shipping int64) invoicedomain.Calculations {
	discount := spec.AmountFor(subtotal)

	var tax int64
	if taxEnabled && taxRatePercent > 0 {
		tax = int64(math.Round(float64(subtotal-discount) * taxRatePercent / 100))
	}

	if shipping < 0 {
		shipping = 0
	}

	grandTotal := subtotal - discount + tax + shipping
	if grandTotal < 0 {
		grandTotal = 0
	}

	return invoicedomain.Calculations{
		Subtotal:     subtotal,
		Discount:     discount,
		DiscountType: spec.Type(),
		Tax:          tax,
		Shipping:     shipping,
		GrandTotal:   grandTotal,
	}
}

// Schedule splits the grand total according to the payment terms. The down
// payment is a percentage of the grand total; the remaining balance is the
// exact complement, so the two legs always sum to the grand total.
func Schedule(grandTotal int64, terms message.PaymentTerms) *invoicedomain.PaymentSchedule {
	if !terms.HasDownPayment && terms.DueDate == nil {
		return nil
	}

	pct := terms.DownPaymentPct
	if !terms.HasDownPayment {
		pct = 0
	}
	downPayment := int64(math.Round(float64(grandTotal) * pct / 100))
	remaining := grandTotal - downPayment

	return &invoicedomain.PaymentSchedule{
		DownPayment: invoicedomain.PaymentPart{
			Percentage: pct,
			Amount:     downPayment,
		},
		RemainingBalance: invoicedomain.PaymentPart{
			Amount:  remaining,
			DueDate: terms.DueDate,
		},
	}
}
