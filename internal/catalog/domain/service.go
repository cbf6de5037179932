package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Resolution is the outcome of a price lookup. An unmatched product resolves
// to a zero price with MatchedFromCatalog false; that is a reportable
// condition, not an error.
type Resolution struct {
	UnitPrice          int64
	MatchedFromCatalog bool
}

type CreateRequest struct {
	BusinessID snowflake.ID `json:"-"`
	Name       string       `json:"name"`
	UnitPrice  int64        `json:"unit_price"`
}

type ListRequest struct {
	Name   string `form:"name"`
	Active *bool  `form:"active"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Service is the catalog store contract. Resolve is read-only: it never
// rewrites the queried name and never writes back to the catalog.
type Service interface {
	Resolve(ctx context.Context, businessID snowflake.ID, productName string) (Resolution, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, businessID snowflake.ID, req ListRequest) ([]Response, error)
}

var (
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrDuplicateName   = errors.New("duplicate_name")
	ErrNotFound        = errors.New("not_found")
)
