package migration

import (
	businessdomain "github.com/fairmog/tagihin/internal/business/domain"
	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
	"github.com/fairmog/tagihin/internal/events"
	invoicedomain "github.com/fairmog/tagihin/internal/invoice/domain"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema for every persisted model,
// including the unique indexes the number reservation depends on.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&businessdomain.Business{},
		&catalogdomain.Product{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&invoicedomain.NumberRecord{},
		&events.InvoiceEvent{},
	)
}
