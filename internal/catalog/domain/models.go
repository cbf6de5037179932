package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Product is a catalog row mapping a known product name to its reference
// unit price in the smallest currency unit.
type Product struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	BusinessID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_products_business_name,priority:1"`
	Name           string       `gorm:"type:text;not null"`
	NormalizedName string       `gorm:"type:text;not null;uniqueIndex:ux_products_business_name,priority:2"`
	UnitPrice      int64        `gorm:"not null"`
	Active         bool         `gorm:"not null;default:true"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

// NormalizeName folds case and collapses interior whitespace so lookups are
// insensitive to both. The original name is stored untouched alongside it.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
