package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	businessdomain "github.com/fairmog/tagihin/internal/business/domain"
)

// Service is the order message engine: one call turns a raw chat message into
// a computed, numbered, persisted invoice.
type Service interface {
	ProcessMessage(ctx context.Context, raw string, kind Kind, profile businessdomain.Profile) (*Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, req ListRequest) ([]Invoice, error)
}

type ListRequest struct {
	BusinessID int64 `form:"-"`
	Limit      int   `form:"limit"`
}

// Pipeline stage names reported on hard failures.
const (
	StageExtract = "extract"
	StagePricing = "pricing"
	StageNumber  = "number"
	StagePersist = "persist"
)

// ParseFailure is the structured hard-failure result: it names the offending
// pipeline stage and wraps the underlying cause. The caller receives either a
// complete invoice or one of these, never a partially populated invoice.
type ParseFailure struct {
	Stage string
	Err   error
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("%s stage failed: %v", f.Stage, f.Err)
}

func (f *ParseFailure) Unwrap() error { return f.Err }

// NewParseFailure wraps err with the stage it occurred in.
func NewParseFailure(stage string, err error) *ParseFailure {
	return &ParseFailure{Stage: stage, Err: err}
}

var (
	ErrInvalidBusiness  = errors.New("invalid_business")
	ErrInvalidKind      = errors.New("invalid_kind")
	ErrEmptyMessage     = errors.New("empty_message")
	ErrNoLineItems      = errors.New("no_line_items")
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrNumberTaken      = errors.New("number_taken")
	ErrNumberExhausted  = errors.New("number_generation_exhausted")
)

// Response is the stable serialized layout consumed by rendering and storage.
type Response struct {
	Header          ResponseHeader   `json:"header"`
	Customer        ResponseCustomer `json:"customer"`
	Items           []ResponseItem   `json:"items"`
	Calculations    Calculations     `json:"calculations"`
	PaymentSchedule *PaymentSchedule `json:"paymentSchedule,omitempty"`
	Notes           ResponseNotes    `json:"notes"`
}

type ResponseHeader struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	Date          time.Time `json:"date"`
}

type ResponseCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type ResponseItem struct {
	ProductName        string `json:"productName"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unitPrice"`
	LineTotal          int64  `json:"lineTotal"`
	MatchedFromCatalog bool   `json:"matchedFromCatalog"`
}

type ResponseNotes struct {
	CustomNotes string `json:"customNotes,omitempty"`
}

// ToResponse flattens the aggregate into the externally visible layout.
func (inv *Invoice) ToResponse() Response {
	items := make([]ResponseItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, ResponseItem{
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			LineTotal:          item.LineTotal,
			MatchedFromCatalog: item.MatchedFromCatalog,
		})
	}
	return Response{
		Header: ResponseHeader{
			InvoiceNumber: inv.Number,
			Date:          inv.IssuedAt,
		},
		Customer: ResponseCustomer{
			Name:    inv.CustomerName,
			Phone:   inv.CustomerPhone,
			Email:   inv.CustomerEmail,
			Address: inv.CustomerAddress,
		},
		Items: items,
		Calculations: Calculations{
			Subtotal:     inv.Subtotal,
			Discount:     inv.Discount,
			DiscountType: inv.DiscountType,
			Tax:          inv.Tax,
			Shipping:     inv.Shipping,
			GrandTotal:   inv.GrandTotal,
		},
		PaymentSchedule: inv.PaymentSchedule,
		Notes:           ResponseNotes{CustomNotes: inv.CustomNotes},
	}
}
