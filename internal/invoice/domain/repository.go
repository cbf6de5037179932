package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the invoice record store: durable, uniqueness-checked
// persistence of generated numbers and invoices.
type Repository interface {
	// ReserveNumber inserts a number reservation. It returns ErrNumberTaken
	// when the same kind, business code, date and suffix already exist.
	ReserveNumber(ctx context.Context, db *gorm.DB, record *NumberRecord) error
	InsertInvoice(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, businessID snowflake.ID, limit int) ([]Invoice, error)
	CountNumbersForDay(ctx context.Context, db *gorm.DB, kind Kind, businessCode, dateKey string) (int64, error)
}
