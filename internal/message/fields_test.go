package message

import (
	"reflect"
	"testing"
)

func TestExtractFieldsSingleLineWithDiscount(t *testing.T) {
	fields := ExtractFields("product 1pc price 100000 discount 10%")

	if want := []string{"product 1pc price 100000"}; !reflect.DeepEqual(fields.ItemLines, want) {
		t.Fatalf("expected item lines %v, got %v", want, fields.ItemLines)
	}
	if fields.DiscountDirective != "discount 10%" {
		t.Fatalf("expected discount directive, got %q", fields.DiscountDirective)
	}
}

func TestExtractFieldsNotesVerbatim(t *testing.T) {
	fields := ExtractFields("lolly 2pcs harga 30000\nCatatan : lolly nya warna hitam 2 putih 2.")

	want := "lolly nya warna hitam 2 putih 2."
	if fields.CustomNotes != want {
		t.Fatalf("expected notes %q, got %q", want, fields.CustomNotes)
	}
}

func TestExtractFieldsNotesEnglishMarker(t *testing.T) {
	fields := ExtractFields("Notes: ship after payment")
	if fields.CustomNotes != "ship after payment" {
		t.Fatalf("expected notes captured, got %q", fields.CustomNotes)
	}
}

func TestExtractFieldsMultiLine(t *testing.T) {
	raw := "baju polos 2pcs harga 50000\n" +
		"Budi 081234567890\n" +
		"Jl. Merdeka 10\n" +
		"diskon 10%\n" +
		"ongkir 15rb\n" +
		"DP 30% jatuh tempo 2026-09-15\n" +
		"Catatan : kirim besok pagi"

	fields := ExtractFields(raw)

	if want := []string{"baju polos 2pcs harga 50000"}; !reflect.DeepEqual(fields.ItemLines, want) {
		t.Fatalf("expected item lines %v, got %v", want, fields.ItemLines)
	}
	if len(fields.ContactLines) != 2 {
		t.Fatalf("expected 2 contact lines, got %v", fields.ContactLines)
	}
	if fields.DiscountDirective != "diskon 10%" {
		t.Fatalf("unexpected discount directive %q", fields.DiscountDirective)
	}
	if fields.ShippingDirective != "ongkir 15rb" {
		t.Fatalf("unexpected shipping directive %q", fields.ShippingDirective)
	}
	if fields.PaymentDirective == "" {
		t.Fatalf("expected payment directive captured")
	}
	if fields.CustomNotes != "kirim besok pagi" {
		t.Fatalf("unexpected notes %q", fields.CustomNotes)
	}
}

func TestExtractFieldsOnlyFirstDiscountCounts(t *testing.T) {
	fields := ExtractFields("kaos 2pcs harga 40000 diskon 10%\ndiscount 20%")
	if fields.DiscountDirective != "diskon 10%" {
		t.Fatalf("expected first discount to win, got %q", fields.DiscountDirective)
	}
}

func TestExtractFieldsNoItems(t *testing.T) {
	fields := ExtractFields("081234567890\ndiskon 10%")
	if len(fields.ItemLines) != 0 {
		t.Fatalf("expected no item lines, got %v", fields.ItemLines)
	}
}

func TestExtractFieldsEmptyMessage(t *testing.T) {
	fields := ExtractFields("")
	if len(fields.ItemLines) != 0 || fields.DiscountDirective != "" || fields.CustomNotes != "" {
		t.Fatalf("expected empty fields, got %+v", fields)
	}
}
