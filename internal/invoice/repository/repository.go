package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct{}

func New() invoicedomain.Repository {
	return &Repository{}
}

// ReserveNumber inserts into the uniqueness ledger. The unique index over
// kind, business code, date key and suffix serializes concurrent generators.
// The insert runs with ON CONFLICT DO NOTHING so a collision surfaces as
// zero affected rows instead of aborting the enclosing transaction.
func (r *Repository) ReserveNumber(ctx context.Context, db *gorm.DB, record *invoicedomain.NumberRecord) error {
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "kind"},
				{Name: "business_code"},
				{Name: "date_key"},
				{Name: "suffix"},
			},
			DoNothing: true,
		}).
		Create(record)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return invoicedomain.ErrNumberTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invoicedomain.ErrNumberTaken
	}
	return nil
}

func (r *Repository) InsertInvoice(ctx context.Context, db *gorm.DB, invoice *invoicedomain.Invoice) error {
	if err := db.WithContext(ctx).Create(invoice).Error; err != nil {
		return err
	}
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
		invoice.Items[i].Position = i
	}
	if len(invoice.Items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&invoice.Items).Error
}

func (r *Repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []invoicedomain.InvoiceItem
	err = db.WithContext(ctx).
		Where("invoice_id = ?", id).
		Order("position").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return &invoice, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB, businessID snowflake.ID, limit int) ([]invoicedomain.Invoice, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var invoices []invoicedomain.Invoice
	err := db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *Repository) CountNumbersForDay(ctx context.Context, db *gorm.DB, kind invoicedomain.Kind, businessCode, dateKey string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&invoicedomain.NumberRecord{}).
		Where("kind = ? AND business_code = ? AND date_key = ?", kind, businessCode, dateKey).
		Count(&count).Error
	return count, err
}
