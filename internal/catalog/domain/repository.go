package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByNormalizedName(ctx context.Context, db *gorm.DB, businessID snowflake.ID, normalized string) (*Product, error)
	List(ctx context.Context, db *gorm.DB, businessID snowflake.ID, filter ListRequest) ([]Product, error)
}
