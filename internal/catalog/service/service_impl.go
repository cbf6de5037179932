package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fairmog/tagihin/internal/cache"
	catalogdomain "github.com/fairmog/tagihin/internal/catalog/domain"
	"github.com/fairmog/tagihin/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository

	lookupCache cache.Cache[string, catalogdomain.Resolution]
	cacheTTL    time.Duration
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
	Cfg   config.Config
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("catalog.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		lookupCache: cache.NewTTLCache[string, catalogdomain.Resolution](),
		cacheTTL:    p.Cfg.CatalogCacheTTL,
	}
}

// Resolve looks up the reference price for a product name. The lookup is
// normalized (case and whitespace insensitive) but the caller's name is never
// rewritten, and a miss resolves to a zero price rather than an error.
func (s *Service) Resolve(ctx context.Context, businessID snowflake.ID, productName string) (catalogdomain.Resolution, error) {
	if businessID == 0 {
		return catalogdomain.Resolution{}, catalogdomain.ErrInvalidBusiness
	}
	normalized := catalogdomain.NormalizeName(productName)
	if normalized == "" {
		return catalogdomain.Resolution{}, nil
	}

	key := fmt.Sprintf("%d:%s", businessID, normalized)
	if cached, ok := s.lookupCache.Get(key); ok {
		return cached, nil
	}

	product, err := s.repo.FindByNormalizedName(ctx, s.db, businessID, normalized)
	if err != nil {
		return catalogdomain.Resolution{}, err
	}

	resolution := catalogdomain.Resolution{}
	if product != nil {
		resolution = catalogdomain.Resolution{
			UnitPrice:          product.UnitPrice,
			MatchedFromCatalog: true,
		}
	}

	// Misses are cached too: unrecognized names repeat within a session and
	// must not hammer the store.
	s.lookupCache.Set(key, resolution, s.cacheTTL)
	return resolution, nil
}

func (s *Service) Create(ctx context.Context, req catalogdomain.CreateRequest) (*catalogdomain.Response, error) {
	if req.BusinessID == 0 {
		return nil, catalogdomain.ErrInvalidBusiness
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if req.UnitPrice < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}

	product := catalogdomain.Product{
		ID:             s.genID.Generate(),
		BusinessID:     req.BusinessID,
		Name:           name,
		NormalizedName: catalogdomain.NormalizeName(name),
		UnitPrice:      req.UnitPrice,
		Active:         true,
	}
	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, catalogdomain.ErrDuplicateName
		}
		return nil, err
	}

	s.lookupCache.Delete(fmt.Sprintf("%d:%s", req.BusinessID, product.NormalizedName))
	s.log.Info("catalog product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.Int64("unit_price", product.UnitPrice),
	)

	resp := toResponse(product)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, businessID snowflake.ID, req catalogdomain.ListRequest) ([]catalogdomain.Response, error) {
	if businessID == 0 {
		return nil, catalogdomain.ErrInvalidBusiness
	}
	products, err := s.repo.List(ctx, s.db, businessID, req)
	if err != nil {
		return nil, err
	}
	responses := make([]catalogdomain.Response, 0, len(products))
	for _, product := range products {
		responses = append(responses, toResponse(product))
	}
	return responses, nil
}

func toResponse(product catalogdomain.Product) catalogdomain.Response {
	return catalogdomain.Response{
		ID:        product.ID.String(),
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Active:    product.Active,
		CreatedAt: product.CreatedAt,
	}
}
