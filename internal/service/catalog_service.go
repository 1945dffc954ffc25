package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cashdrawer/internal/dto"
	"cashdrawer/internal/model"
	"cashdrawer/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const priceLookupTTL = 5 * time.Minute

// CatalogService defines the business logic contract for products.
type CatalogService interface {
	Register(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	// List returns the whole catalog in creation order.
	List(ctx context.Context) ([]dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	// LookupPrice serves name and price from Redis when available.
	LookupPrice(ctx context.Context, id uint) (*dto.PriceLookupResponse, error)
	UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*dto.ProductResponse, error)
}

type catalogService struct {
	repo repository.ProductRepository
	rdb  *redis.Client // nil disables the lookup cache
}

func NewCatalogService(repo repository.ProductRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, rdb: rdb}
}

func (s *catalogService) Register(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("product name is required")
	}
	if err := checkPrice(req.UnitPrice); err != nil {
		return nil, err
	}
	if req.StockQuantity < 0 {
		return nil, invalid("stock quantity must not be negative")
	}

	p := &model.Product{
		Name:          name,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, storageErr("create product", err)
	}
	log.Info().Uint("product_id", p.ID).Str("name", p.Name).Msg("product registered")
	return productToResponse(p), nil
}

func (s *catalogService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = *productToResponse(&products[i])
	}
	return resp, nil
}

func (s *catalogService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("find product", err, ErrNotFound)
	}
	return productToResponse(p), nil
}

func (s *catalogService) LookupPrice(ctx context.Context, id uint) (*dto.PriceLookupResponse, error) {
	key := priceCacheKey(id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp dto.PriceLookupResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("find product", err, ErrNotFound)
	}
	resp := &dto.PriceLookupResponse{ID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice}

	// Populate cache: best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, key, b, priceLookupTTL).Err()
		}
	}
	return resp, nil
}

// UpdatePrice changes the catalog price. Sale items keep the price they were
// sold at, so history is unaffected.
func (s *catalogService) UpdatePrice(ctx context.Context, id uint, price decimal.Decimal) (*dto.ProductResponse, error) {
	if err := checkPrice(price); err != nil {
		return nil, err
	}
	n, err := s.repo.UpdatePrice(ctx, id, price)
	if err != nil {
		return nil, storageErr("update price", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, priceCacheKey(id)).Err(); err != nil {
			log.Warn().Err(err).Uint("product_id", id).Msg("price cache invalidation failed")
		}
	}
	return s.Get(ctx, id)
}

// priceScale is the scale of the products.unit_price column.
const priceScale = 2

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return invalid("unit price must not be negative")
	}
	if !price.Equal(price.Round(priceScale)) {
		return invalid("unit price %s has more than %d decimal places", price, priceScale)
	}
	return nil
}

func priceCacheKey(id uint) string { return fmt.Sprintf("product:%d:price", id) }

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		UnitPrice:     p.UnitPrice,
		StockQuantity: p.StockQuantity,
	}
}
