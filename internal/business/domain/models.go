package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Business is a tenant issuing invoices. ShortCode is the alphanumeric code
// embedded in generated invoice and order numbers.
type Business struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	Name           string       `gorm:"type:text;not null"`
	ShortCode      string       `gorm:"type:text;not null"`
	Address        string       `gorm:"type:text"`
	Phone          string       `gorm:"type:text"`
	Email          string       `gorm:"type:text"`
	TaxEnabled     bool         `gorm:"not null;default:false"`
	TaxRatePercent float64      `gorm:"not null;default:0"`
	// CatalogAutoLearn is persisted for forward compatibility but the
	// resolver never writes back to the catalog regardless of its value.
	CatalogAutoLearn bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Business) TableName() string { return "businesses" }

// Profile is the immutable per-request view of a business. Every engine call
// receives one explicitly; there is no process-wide settings singleton.
type Profile struct {
	BusinessID     snowflake.ID
	Name           string
	Address        string
	Phone          string
	Email          string
	ShortCode      string
	TaxEnabled     bool
	TaxRatePercent float64
}

// Profile builds the request-scoped view of the business row.
func (b Business) Profile() Profile {
	return Profile{
		BusinessID:     b.ID,
		Name:           b.Name,
		Address:        b.Address,
		Phone:          b.Phone,
		Email:          b.Email,
		ShortCode:      strings.TrimSpace(b.ShortCode),
		TaxEnabled:     b.TaxEnabled,
		TaxRatePercent: b.TaxRatePercent,
	}
}
