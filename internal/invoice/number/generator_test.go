package number

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/fairmog/tagihin/internal/clock"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
)

type memReserver struct {
	taken    map[string]struct{}
	rejected int
}

func newMemReserver() *memReserver {
	return &memReserver{taken: map[string]struct{}{}}
}

func (r *memReserver) Reserve(_ context.Context, record *invoicedomain.NumberRecord) error {
	if _, ok := r.taken[record.Number]; ok {
		r.rejected++
		return invoicedomain.ErrNumberTaken
	}
	r.taken[record.Number] = struct{}{}
	return nil
}

type alwaysTaken struct{ calls int }

func (r *alwaysTaken) Reserve(context.Context, *invoicedomain.NumberRecord) error {
	r.calls++
	return invoicedomain.ErrNumberTaken
}

// collidingReserver rejects the first N attempts as taken, then delegates.
type collidingReserver struct {
	rejects int
	inner   *memReserver
	calls   int
}

func (r *collidingReserver) Reserve(ctx context.Context, record *invoicedomain.NumberRecord) error {
	r.calls++
	if r.calls <= r.rejects {
		return invoicedomain.ErrNumberTaken
	}
	return r.inner.Reserve(ctx, record)
}

func newTestGenerator(t *testing.T, maxAttempts int) *Generator {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	fixed := clock.Fixed(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	return NewGenerator(node, fixed, maxAttempts, zap.NewNop())
}

func TestNextFormat(t *testing.T) {
	gen := newTestGenerator(t, 0)

	record, err := gen.Next(context.Background(), newMemReserver(), invoicedomain.KindInvoice, "TKU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shape := regexp.MustCompile(`^#INV-TKU-20260831-[A-Z0-9]{4}$`)
	if !shape.MatchString(record.Number) {
		t.Fatalf("unexpected number shape %q", record.Number)
	}
	if record.Kind != invoicedomain.KindInvoice || record.DateKey != "20260831" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestNextOrderKind(t *testing.T) {
	gen := newTestGenerator(t, 0)

	record, err := gen.Next(context.Background(), newMemReserver(), invoicedomain.KindOrder, "TKU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^#ORD-TKU-20260831-[A-Z0-9]{4}$`).MatchString(record.Number) {
		t.Fatalf("unexpected number shape %q", record.Number)
	}
}

func TestNextFallbackCode(t *testing.T) {
	gen := newTestGenerator(t, 0)

	record, err := gen.Next(context.Background(), newMemReserver(), invoicedomain.KindInvoice, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^#INV-BIZ-20260831-[A-Z0-9]{4}$`).MatchString(record.Number) {
		t.Fatalf("expected fallback code in %q", record.Number)
	}
}

func TestNextUnique(t *testing.T) {
	gen := newTestGenerator(t, 0)
	reserver := newMemReserver()

	seen := map[string]struct{}{}
	for i := 0; i < 12; i++ {
		record, err := gen.Next(context.Background(), reserver, invoicedomain.KindInvoice, "TKU")
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}
		if _, dup := seen[record.Number]; dup {
			t.Fatalf("duplicate number %q", record.Number)
		}
		seen[record.Number] = struct{}{}
	}
}

func TestNextRetriesOnCollision(t *testing.T) {
	gen := newTestGenerator(t, 0)
	reserver := &collidingReserver{rejects: 2, inner: newMemReserver()}

	record, err := gen.Next(context.Background(), reserver, invoicedomain.KindInvoice, "TKU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reserver.calls != 3 {
		t.Fatalf("expected 2 rejected attempts before success, got %d calls", reserver.calls)
	}
	if !regexp.MustCompile(`^#INV-TKU-20260831-[A-Z0-9]{4}$`).MatchString(record.Number) {
		t.Fatalf("unexpected number shape %q", record.Number)
	}
	if _, ok := reserver.inner.taken[record.Number]; !ok {
		t.Fatalf("expected committed reservation for %q", record.Number)
	}
}

func TestNextExhaustsAttemptBudget(t *testing.T) {
	gen := newTestGenerator(t, 3)
	reserver := &alwaysTaken{}

	_, err := gen.Next(context.Background(), reserver, invoicedomain.KindInvoice, "TKU")
	if err != invoicedomain.ErrNumberExhausted {
		t.Fatalf("expected ErrNumberExhausted, got %v", err)
	}
	if reserver.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", reserver.calls)
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TKU", "TKU"},
		{"tku", "TKU"},
		{" tk-u ", "TKU"},
		{"Toko 21", "TOKO21"},
		{"", "BIZ"},
		{"---", "BIZ"},
	}
	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
