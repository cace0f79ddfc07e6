package service

import (
	"context"
	"time"

	"github.com/boutique-next/internal/cache"
	"github.com/boutique-next/internal/catalog"
	"github.com/boutique-next/internal/logger"
	"github.com/boutique-next/internal/models"
	"github.com/boutique-next/internal/repository"
)

const catalogCacheKey = "catalog:products"

// ProductService 商品查询服务
type ProductService struct {
	productRepo repository.ProductRepository
	cacheTTL    time.Duration
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, cacheTTLSeconds int) *ProductService {
	ttl := time.Duration(cacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ProductService{
		productRepo: productRepo,
		cacheTTL:    ttl,
	}
}

// CatalogView 商品目录视图：全量商品经过滤排序后返回，
// 同时给出目录内最大生效价格供前端初始化价格区间。
func (s *ProductService) CatalogView(ctx context.Context, search string, filters catalog.FilterOptions, sortKey string) ([]models.Product, models.Money, error) {
	products, err := s.listAllCached(ctx)
	if err != nil {
		return nil, models.Money{}, err
	}
	view := catalog.View(products, search, filters, sortKey)
	return view, catalog.MaxPrice(products), nil
}

// GetByID 商品详情
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListFeatured 首页精选商品
func (s *ProductService) ListFeatured(limit int) ([]models.Product, error) {
	return s.productRepo.ListFeatured(limit)
}

// Create 创建商品并失效目录缓存
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

// Update 更新商品并失效目录缓存
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

// InvalidateCatalogCache 库存变化后失效目录缓存
func (s *ProductService) InvalidateCatalogCache(ctx context.Context) {
	s.invalidateCatalogCache(ctx)
}

func (s *ProductService) listAllCached(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	hit, err := cache.GetJSON(ctx, catalogCacheKey, &products)
	if err != nil {
		logger.Warnw("catalog_cache_read_failed", "error", err)
	}
	if hit {
		return products, nil
	}

	products, err = s.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, catalogCacheKey, products, s.cacheTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "error", err)
	}
	return products, nil
}

func (s *ProductService) invalidateCatalogCache(ctx context.Context) {
	if err := cache.Del(ctx, catalogCacheKey); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}
