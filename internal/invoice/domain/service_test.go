package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseFailure(t *testing.T) {
	cause := ErrNoLineItems
	failure := NewParseFailure(StageExtract, cause)

	if !errors.Is(failure, ErrNoLineItems) {
		t.Fatalf("expected failure to wrap cause")
	}
	if failure.Stage != StageExtract {
		t.Fatalf("unexpected stage %q", failure.Stage)
	}
	if msg := failure.Error(); !strings.Contains(msg, StageExtract) || !strings.Contains(msg, cause.Error()) {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestToResponseLayout(t *testing.T) {
	issued := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	invoice := Invoice{
		Number:        "#INV-TKU-20260831-AB12",
		IssuedAt:      issued,
		CustomerName:  "Budi",
		CustomerPhone: "081234567890",
		Subtotal:      100000,
		Discount:      10000,
		DiscountType:  "percentage",
		GrandTotal:    90000,
		CustomNotes:   "kirim besok",
		Items: []InvoiceItem{
			{ProductName: "product", Quantity: 1, UnitPrice: 100000, LineTotal: 100000},
		},
	}

	raw, err := json.Marshal(invoice.ToResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	header, ok := decoded["header"].(map[string]any)
	if !ok || header["invoiceNumber"] != "#INV-TKU-20260831-AB12" {
		t.Fatalf("unexpected header %v", decoded["header"])
	}
	customer, ok := decoded["customer"].(map[string]any)
	if !ok || customer["name"] != "Budi" || customer["phone"] != "081234567890" {
		t.Fatalf("unexpected customer %v", decoded["customer"])
	}
	items, ok := decoded["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected items %v", decoded["items"])
	}
	item := items[0].(map[string]any)
	if item["productName"] != "product" {
		t.Fatalf("unexpected item %v", item)
	}
	calcs, ok := decoded["calculations"].(map[string]any)
	if !ok || calcs["discountType"] != "percentage" || calcs["grandTotal"] != float64(90000) {
		t.Fatalf("unexpected calculations %v", decoded["calculations"])
	}
	if _, present := decoded["paymentSchedule"]; present {
		t.Fatalf("expected payment schedule omitted when absent")
	}
	notes, ok := decoded["notes"].(map[string]any)
	if !ok || notes["customNotes"] != "kirim besok" {
		t.Fatalf("unexpected notes %v", decoded["notes"])
	}
}

func TestToResponseWithSchedule(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	invoice := Invoice{
		Number:     "#INV-TKU-20260831-AB12",
		GrandTotal: 200000,
		PaymentSchedule: &PaymentSchedule{
			DownPayment:      PaymentPart{Percentage: 50, Amount: 100000},
			RemainingBalance: PaymentPart{Amount: 100000, DueDate: &due},
		},
	}

	resp := invoice.ToResponse()
	if resp.PaymentSchedule == nil {
		t.Fatalf("expected schedule carried to response")
	}
	if resp.PaymentSchedule.DownPayment.Amount+resp.PaymentSchedule.RemainingBalance.Amount != 200000 {
		t.Fatalf("expected legs to sum to grand total")
	}
}
