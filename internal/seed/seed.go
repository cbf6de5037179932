package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/fairmog/tagihin/internal/business/domain"
	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
	"gorm.io/gorm"
)

const (
	defaultBusinessName = "Toko Utama"
	defaultBusinessCode = "TKU"
)

var starterCatalog = []struct {
	name      string
	unitPrice int64
}{
	{"lolly", 30000},
	{"sumba blue jeans", 150000},
	{"kaos polos", 45000},
}

// EnsureDefaultBusiness seeds the default business and a small starter
// catalog for local bootstrap. It is idempotent across restarts.
func EnsureDefaultBusiness(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		business, err := ensureBusinessTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureStarterCatalogTx(ctx, tx, node, business.ID)
	})
}

func ensureBusinessTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (businessdomain.Business, error) {
	var business businessdomain.Business
	err := tx.WithContext(ctx).Where("short_code = ?", defaultBusinessCode).First(&business).Error
	if err == nil {
		return business, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return business, err
	}

	business = businessdomain.Business{
		ID:             node.Generate(),
		Name:           defaultBusinessName,
		ShortCode:      defaultBusinessCode,
		TaxEnabled:     false,
		TaxRatePercent: 11,
	}
	if err := tx.WithContext(ctx).Create(&business).Error; err != nil {
		return business, err
	}
	return business, nil
}

func ensureStarterCatalogTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, businessID snowflake.ID) error {
	for _, entry := range starterCatalog {
		normalized := catalogdomain.NormalizeName(entry.name)

		var existing catalogdomain.Product
		err := tx.WithContext(ctx).
			Where("business_id = ? AND normalized_name = ?", businessID, normalized).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		product := catalogdomain.Product{
			ID:             node.Generate(),
			BusinessID:     businessID,
			Name:           entry.name,
			NormalizedName: normalized,
			UnitPrice:      entry.unitPrice,
			Active:         true,
		}
		if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
			return err
		}
	}
	return nil
}
