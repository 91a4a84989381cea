package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kitlane/internal/cache"
	"github.com/kitlane/internal/logger"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetBySlug 获取商品详情，优先读缓存
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}

	cacheKey := productCacheKey(slug)
	var cached models.Product
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("product_cache_read_failed", "slug", slug, "error", err)
	} else if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	if err := cache.SetJSON(ctx, cacheKey, product, productCacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// List 获取商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ProductInput 商品写入参数
type ProductInput struct {
	CategoryID       uint         `json:"category_id"`
	Slug             string       `json:"slug"`
	Title            models.JSON  `json:"title"`
	Description      models.JSON  `json:"description"`
	Team             string       `json:"team"`
	Season           string       `json:"season"`
	KitType          string       `json:"kit_type"`
	PriceAmount      models.Money `json:"price_amount"`
	Sizes            []string     `json:"sizes"`
	Images           []string     `json:"images"`
	Tags             []string     `json:"tags"`
	Customizable     *bool        `json:"customizable"`
	CustomizationFee models.Money `json:"customization_fee"`
	Patches          []string     `json:"patches"`
	Stock            int          `json:"stock"`
	IsActive         *bool        `json:"is_active"`
	SortOrder        int          `json:"sort_order"`
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{Customizable: true, IsActive: true}
	if err := s.fillProduct(product, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品并失效缓存
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}
	oldSlug := existing.Slug
	if err := s.fillProduct(existing, input); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldSlug, existing.Slug)
	return existing, nil
}

// Delete 删除商品并失效缓存
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Slug)
	return nil
}

// GetAdmin 后台获取商品详情（含下架商品）
func (s *ProductService) GetAdmin(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) fillProduct(product *models.Product, input ProductInput) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || len(input.Title) == 0 {
		return ErrProductInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	kitType := strings.ToLower(strings.TrimSpace(input.KitType))
	switch kitType {
	case "":
		kitType = models.KitTypeHome
	case models.KitTypeHome, models.KitTypeAway, models.KitTypeThird, models.KitTypeGoalkeeper:
	default:
		return ErrProductInvalid
	}

	product.CategoryID = input.CategoryID
	product.Slug = slug
	product.TitleJSON = input.Title
	product.DescriptionJSON = input.Description
	product.Team = strings.TrimSpace(input.Team)
	product.Season = strings.TrimSpace(input.Season)
	product.KitType = kitType
	product.PriceAmount = input.PriceAmount
	product.Sizes = models.StringArray(input.Sizes)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	product.Patches = models.StringArray(input.Patches)
	product.CustomizationFee = input.CustomizationFee
	product.Stock = input.Stock
	product.SortOrder = input.SortOrder
	if input.Customizable != nil {
		product.Customizable = *input.Customizable
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, slugs ...string) {
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if err := cache.Del(ctx, productCacheKey(slug)); err != nil {
			logger.Warnw("product_cache_invalidate_failed", "slug", slug, "error", err)
		}
	}
}

func productCacheKey(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}
