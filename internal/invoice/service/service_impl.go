package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/fairmog/tagihin/internal/business/domain"
	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
	"github.com/fairmog/tagihin/internal/clock"
	"github.com/fairmog/tagihin/internal/config"
	"github.com/fairmog/tagihin/internal/events"
	"github.com/fairmog/tagihin/internal/invoice/calc"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"github.com/fairmog/tagihin/internal/invoice/number"
	"github.com/fairmog/tagihin/internal/message"
	"github.com/fairmog/tagihin/internal/observability/logger"
	"github.com/fairmog/tagihin/internal/observability/metrics"
	"github.com/fairmog/tagihin/internal/observability/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clk   clock.Clock

	catalogSvc catalogdomain.Service
	repo       invoicedomain.Repository
	numbers    *number.Generator
	outbox     *events.Outbox
}

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clk        clock.Clock
	CatalogSvc catalogdomain.Service
	Repo       invoicedomain.Repository
	Cfg        config.Config
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		clk:        p.Clk,
		catalogSvc: p.CatalogSvc,
		repo:       p.Repo,
		numbers:    number.NewGenerator(p.GenID, p.Clk, p.Cfg.NumberMaxAttempts, p.Log),
		outbox:     events.NewOutbox(p.DB, p.GenID),
	}
}

// ProcessMessage runs the full pipeline: extract fields, parse and price item
// lines, interpret the discount, compute totals, reserve a unique number and
// persist everything in one transaction. Soft conditions are recorded on the
// result; hard failures come back as a ParseFailure naming the stage.
func (s *Service) ProcessMessage(ctx context.Context, raw string, kind invoicedomain.Kind, profile businessdomain.Profile) (*invoicedomain.Invoice, error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, "invoice.process_message",
		attribute.String("kind", string(kind)),
	)
	defer span.End()

	if kind != invoicedomain.KindInvoice && kind != invoicedomain.KindOrder {
		return nil, invoicedomain.ErrInvalidKind
	}
	if profile.BusinessID == 0 {
		return nil, invoicedomain.ErrInvalidBusiness
	}
	if strings.TrimSpace(raw) == "" {
		metrics.Engine().IncProcessed("parse_failed")
		return nil, invoicedomain.NewParseFailure(invoicedomain.StageExtract, invoicedomain.ErrEmptyMessage)
	}

	fields := message.ExtractFields(raw)

	items, pricingUnresolved, err := s.priceItems(ctx, profile.BusinessID, fields.ItemLines)
	if err != nil {
		metrics.Engine().IncProcessed("storage_failed")
		return nil, invoicedomain.NewParseFailure(invoicedomain.StagePricing, err)
	}
	if len(items) == 0 {
		metrics.Engine().IncProcessed("parse_failed")
		return nil, invoicedomain.NewParseFailure(invoicedomain.StageExtract, invoicedomain.ErrNoLineItems)
	}

	discountSpec := message.ParseDiscount(fields.DiscountDirective)
	shipping := message.ParseShipping(fields.ShippingDirective)
	terms := message.ParsePaymentTerms(fields.PaymentDirective)
	customer := message.ParseCustomer(fields.ContactLines)

	lines := make([]calc.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, calc.Line{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	calculations := calc.Compute(calc.Subtotal(lines), discountSpec, profile.TaxEnabled, profile.TaxRatePercent, shipping)
	schedule := calc.Schedule(calculations.GrandTotal, terms)

	invoice := &invoicedomain.Invoice{
		ID:                s.genID.Generate(),
		BusinessID:        profile.BusinessID,
		Kind:              kind,
		IssuedAt:          s.clk.Now(),
		CustomerName:      customer.Name,
		CustomerPhone:     customer.Phone,
		CustomerEmail:     customer.Email,
		CustomerAddress:   customer.Address,
		Subtotal:          calculations.Subtotal,
		Discount:          calculations.Discount,
		DiscountType:      calculations.DiscountType,
		Tax:               calculations.Tax,
		Shipping:          calculations.Shipping,
		GrandTotal:        calculations.GrandTotal,
		PaymentSchedule:   schedule,
		CustomNotes:       fields.CustomNotes,
		PricingUnresolved: pricingUnresolved,
		Items:             items,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.numbers.Next(ctx, txReserver{tx: tx, repo: s.repo}, kind, profile.ShortCode)
		if err != nil {
			return invoicedomain.NewParseFailure(invoicedomain.StageNumber, err)
		}
		invoice.Number = record.Number
		invoice.BusinessCode = record.BusinessCode

		if err := s.repo.InsertInvoice(ctx, tx, invoice); err != nil {
			return invoicedomain.NewParseFailure(invoicedomain.StagePersist, err)
		}

		eventType := events.EventInvoiceCreated
		if kind == invoicedomain.KindOrder {
			eventType = events.EventOrderCreated
		}
		payload := events.InvoiceCreatedPayload{
			InvoiceID:  invoice.ID.String(),
			Number:     invoice.Number,
			GrandTotal: invoice.GrandTotal,
		}
		if err := s.outbox.PublishTx(ctx, tx, events.Event{
			BusinessID: profile.BusinessID,
			Type:       eventType,
			Payload:    payload.ToMap(),
			DedupeKey:  invoice.Number,
		}); err != nil {
			return invoicedomain.NewParseFailure(invoicedomain.StagePersist, err)
		}
		return nil
	})
	if err != nil {
		metrics.Engine().IncProcessed("storage_failed")
		return nil, err
	}

	metrics.Engine().IncProcessed("invoiced")
	metrics.Engine().ObserveProcessDuration(time.Since(start).Seconds())

	logger.FromContext(ctx).Named("invoice.service").Info("message processed",
		zap.String("number", invoice.Number),
		zap.Int("items", len(invoice.Items)),
		zap.Int64("grand_total", invoice.GrandTotal),
		zap.String("customer_phone", logger.MaskPhone(invoice.CustomerPhone)),
		zap.Bool("pricing_unresolved", invoice.PricingUnresolved),
	)
	return invoice, nil
}

// priceItems parses each extracted item line and fills unit prices from the
// catalog when the message does not state one. An explicit price always wins
// over a catalog match, and the product name is never rewritten.
func (s *Service) priceItems(ctx context.Context, businessID snowflake.ID, itemLines []string) ([]invoicedomain.InvoiceItem, bool, error) {
	items := make([]invoicedomain.InvoiceItem, 0, len(itemLines))
	pricingUnresolved := false

	for _, line := range itemLines {
		parsed, ok := message.ParseItemLine(line)
		if !ok {
			continue
		}

		unitPrice := parsed.UnitPrice
		matched := false
		if !parsed.HasExplicitPrice {
			resolution, err := s.catalogSvc.Resolve(ctx, businessID, parsed.ProductName)
			if err != nil {
				return nil, false, err
			}
			unitPrice = resolution.UnitPrice
			matched = resolution.MatchedFromCatalog
			if !matched {
				pricingUnresolved = true
				metrics.Engine().IncPricingUnresolved()
			}
		}

		items = append(items, invoicedomain.InvoiceItem{
			ID:                 s.genID.Generate(),
			ProductName:        parsed.ProductName,
			Quantity:           parsed.Quantity,
			UnitPrice:          unitPrice,
			LineTotal:          int64(parsed.Quantity) * unitPrice,
			MatchedFromCatalog: matched,
		})
	}

	return items, pricingUnresolved, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidInvoiceID
	}
	invoice, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) ([]invoicedomain.Invoice, error) {
	if req.BusinessID == 0 {
		return nil, invoicedomain.ErrInvalidBusiness
	}
	return s.repo.List(ctx, s.db, snowflake.ID(req.BusinessID), req.Limit)
}

// txReserver binds the number generator's reservation step to the enclosing
// transaction, so a committed number and its invoice persist atomically.
type txReserver struct {
	tx   *gorm.DB
	repo invoicedomain.Repository
}

func (r txReserver) Reserve(ctx context.Context, record *invoicedomain.NumberRecord) error {
	return r.repo.ReserveNumber(ctx, r.tx, record)
}
