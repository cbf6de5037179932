package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
	"gorm.io/gorm"
)

type Repository struct{}

func New() catalogdomain.Repository {
	return &Repository{}
}

func (r *Repository) Insert(ctx context.Context, db *gorm.DB, product *catalogdomain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *Repository) FindByNormalizedName(ctx context.Context, db *gorm.DB, businessID snowflake.ID, normalized string) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := db.WithContext(ctx).
		Where("business_id = ? AND normalized_name = ? AND active = ?", businessID, normalized, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *Repository) List(ctx context.Context, db *gorm.DB, businessID snowflake.ID, filter catalogdomain.ListRequest) ([]catalogdomain.Product, error) {
	query := db.WithContext(ctx).Where("business_id = ?", businessID)
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("normalized_name LIKE ?", "%"+catalogdomain.NormalizeName(name)+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var products []catalogdomain.Product
	if err := query.Order("normalized_name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
