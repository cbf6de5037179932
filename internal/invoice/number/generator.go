// Package number produces unique, business-prefixed invoice and order
// identifiers of the form #<KIND>-<CODE>-<YYYYMMDD>-<SUFFIX>.
package number

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fairmog/tagihin/internal/clock"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"github.com/fairmog/tagihin/internal/observability/metrics"
	"go.uber.org/zap"
)

// FallbackCode is used when a business has no short code configured. A
// missing code must never fail number generation.
const FallbackCode = "BIZ"

const (
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength   = 4

	defaultMaxAttempts = 8
)

// Reserver commits a candidate number against the record store's uniqueness
// ledger. Implementations return invoicedomain.ErrNumberTaken on a same-day,
// same-kind collision.
type Reserver interface {
	Reserve(ctx context.Context, record *invoicedomain.NumberRecord) error
}

// Generator drives a candidate number from request to committed reservation,
// regenerating the suffix on collision up to a bounded attempt budget.
type Generator struct {
	genID       *snowflake.Node
	clk         clock.Clock
	maxAttempts int
	log         *zap.Logger
}

func NewGenerator(genID *snowflake.Node, clk clock.Clock, maxAttempts int, log *zap.Logger) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Generator{
		genID:       genID,
		clk:         clk,
		maxAttempts: maxAttempts,
		log:         log.Named("invoice.number"),
	}
}

// Next reserves a unique number for the given kind and business code on
// today's date. After the attempt budget is exhausted it fails with
// ErrNumberExhausted instead of looping forever.
func (g *Generator) Next(ctx context.Context, reserver Reserver, kind invoicedomain.Kind, businessCode string) (*invoicedomain.NumberRecord, error) {
	code := NormalizeCode(businessCode)
	dateKey := g.clk.Now().Format("20060102")

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return nil, err
		}

		record := &invoicedomain.NumberRecord{
			ID:           g.genID.Generate(),
			Kind:         kind,
			BusinessCode: code,
			DateKey:      dateKey,
			Suffix:       suffix,
			Number:       Format(kind, code, dateKey, suffix),
		}

		err = reserver.Reserve(ctx, record)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, invoicedomain.ErrNumberTaken) {
			return nil, err
		}

		metrics.Engine().IncNumberRetry()
		g.log.Warn("number collision, regenerating suffix",
			zap.String("number", record.Number),
			zap.Int("attempt", attempt),
		)
	}

	metrics.Engine().IncNumberExhausted()
	return nil, invoicedomain.ErrNumberExhausted
}

// Format renders the externally visible number shape.
func Format(kind invoicedomain.Kind, code, dateKey, suffix string) string {
	return fmt.Sprintf("#%s-%s-%s-%s", kind, code, dateKey, suffix)
}

// NormalizeCode uppercases a business short code and strips anything outside
// [A-Z0-9]. An empty result falls back to FallbackCode.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(code)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return FallbackCode
	}
	return b.String()
}

func randomSuffix() (string, error) {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, suffixLength)
	for i, b := range buf {
		out[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(out), nil
}
