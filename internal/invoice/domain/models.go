package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Kind separates invoice and order numbering namespaces.
type Kind string

const (
	KindInvoice Kind = "INV"
	KindOrder   Kind = "ORD"
)

// Invoice is the persisted aggregate. It is constructed fully in one pass and
// never mutated after persistence; corrections create a new invoice.
type Invoice struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	BusinessID   snowflake.ID `gorm:"not null;index"`
	Number       string       `gorm:"type:text;not null;uniqueIndex"`
	Kind         Kind         `gorm:"type:text;not null"`
	BusinessCode string       `gorm:"type:text;not null"`
	IssuedAt     time.Time    `gorm:"not null"`

	CustomerName    string `gorm:"type:text"`
	CustomerPhone   string `gorm:"type:text"`
	CustomerEmail   string `gorm:"type:text"`
	CustomerAddress string `gorm:"type:text"`

	Subtotal     int64  `gorm:"not null"`
	Discount     int64  `gorm:"not null"`
	DiscountType string `gorm:"type:text;not null"`
	Tax          int64  `gorm:"not null"`
	Shipping     int64  `gorm:"not null"`
	GrandTotal   int64  `gorm:"not null"`

	PaymentSchedule *PaymentSchedule `gorm:"serializer:json"`
	CustomNotes     string           `gorm:"type:text"`

	// PricingUnresolved flags that at least one item fell back to a zero
	// price. It is a soft condition carried on the record, not an error.
	PricingUnresolved bool              `gorm:"not null;default:false"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []InvoiceItem `gorm:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one priced order line. ProductName is byte-identical to the
// product-name substring of the user's message line.
type InvoiceItem struct {
	ID                 snowflake.ID `gorm:"primaryKey"`
	InvoiceID          snowflake.ID `gorm:"not null;index"`
	Position           int          `gorm:"not null"`
	ProductName        string       `gorm:"type:text;not null"`
	Quantity           int          `gorm:"not null"`
	UnitPrice          int64        `gorm:"not null"`
	LineTotal          int64        `gorm:"not null"`
	MatchedFromCatalog bool         `gorm:"not null;default:false"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// NumberRecord is the uniqueness ledger behind generated numbers. The unique
// index across kind, business code, date key and suffix is what makes the
// reservation atomic under concurrent generators.
type NumberRecord struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Kind         Kind         `gorm:"type:text;not null;uniqueIndex:ux_invoice_numbers_scope,priority:1"`
	BusinessCode string       `gorm:"type:text;not null;uniqueIndex:ux_invoice_numbers_scope,priority:2"`
	DateKey      string       `gorm:"type:text;not null;uniqueIndex:ux_invoice_numbers_scope,priority:3"`
	Suffix       string       `gorm:"type:text;not null;uniqueIndex:ux_invoice_numbers_scope,priority:4"`
	Number       string       `gorm:"type:text;not null"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (NumberRecord) TableName() string { return "invoice_numbers" }

// PaymentSchedule splits the grand total into a down payment and a remaining
// balance. Amounts derive from the grand total; due dates pass through as
// parsed.
type PaymentSchedule struct {
	DownPayment      PaymentPart `json:"downPayment"`
	RemainingBalance PaymentPart `json:"remainingBalance"`
}

// PaymentPart is one leg of a payment schedule.
type PaymentPart struct {
	Percentage float64    `json:"percentage,omitempty"`
	Amount     int64      `json:"amount"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

// Calculations carries the computed money figures of an invoice. All amounts
// are in the smallest currency unit and non-negative.
type Calculations struct {
	Subtotal     int64  `json:"subtotal"`
	Discount     int64  `json:"discount"`
	DiscountType string `json:"discountType"`
	Tax          int64  `json:"tax"`
	Shipping     int64  `json:"shipping"`
	GrandTotal   int64  `json:"grandTotal"`
}
