package service

import (
	"context"
	"testing"

	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
	)
}

func TestProductGetBySlug(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductService(db)
	product := seedJersey(t, db, nil)

	got, err := svc.GetBySlug(context.Background(), product.Slug)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got.ID != product.ID {
		t.Fatalf("expected product %d, got %d", product.ID, got.ID)
	}

	if _, err := svc.GetBySlug(context.Background(), "no-such-shirt"); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.GetBySlug(context.Background(), "  "); err != ErrProductNotFound {
		t.Fatalf("blank slug must be not found, got %v", err)
	}
}

func TestProductGetBySlugHidesInactive(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductService(db)
	product := seedJersey(t, db, func(p *models.Product) { p.IsActive = false })

	if _, err := svc.GetBySlug(context.Background(), product.Slug); err != ErrProductNotFound {
		t.Fatalf("inactive product must be hidden from storefront, got %v", err)
	}
	// the back office still sees it
	if _, err := svc.GetAdmin(product.ID); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
}

func TestProductCreateValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductService(db)
	existing := seedJersey(t, db, nil)

	base := ProductInput{
		CategoryID:  existing.CategoryID,
		Slug:        "real-madrid-away-2025-26",
		Title:       models.JSON{"en-US": "Real Madrid Away Shirt"},
		Team:        "Real Madrid",
		Season:      "2025-26",
		KitType:     "AWAY",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(94.99)),
		Sizes:       []string{"S", "M", "L"},
		Stock:       100,
	}

	created, err := svc.Create(context.Background(), base)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.KitType != models.KitTypeAway {
		t.Fatalf("kit type must be normalized, got %s", created.KitType)
	}
	if !created.Customizable || !created.IsActive {
		t.Fatalf("customizable and active default to true")
	}

	blank := base
	blank.Slug = " "
	if _, err := svc.Create(context.Background(), blank); err != ErrProductInvalid {
		t.Fatalf("blank slug must be rejected, got %v", err)
	}

	badKit := base
	badKit.Slug = "another-slug"
	badKit.KitType = "fourth"
	if _, err := svc.Create(context.Background(), badKit); err != ErrProductInvalid {
		t.Fatalf("unknown kit type must be rejected, got %v", err)
	}

	orphan := base
	orphan.Slug = "yet-another-slug"
	orphan.CategoryID = 9999
	if _, err := svc.Create(context.Background(), orphan); err != ErrCategoryNotFound {
		t.Fatalf("missing category must be rejected, got %v", err)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductService(db)
	product := seedJersey(t, db, nil)

	inactive := false
	updated, err := svc.Update(context.Background(), product.ID, ProductInput{
		CategoryID:  product.CategoryID,
		Slug:        product.Slug,
		Title:       models.JSON{"en-US": "Arsenal Home Shirt 25/26"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(75)),
		Sizes:       []string{"M", "L"},
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("is_active override must stick")
	}
	if !updated.PriceAmount.Decimal.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("price not updated, got %s", updated.PriceAmount.Decimal.String())
	}

	if _, err := svc.Update(context.Background(), 9999, ProductInput{}); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), product.ID); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
}

func TestProductListFilters(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newProductService(db)
	first := seedJersey(t, db, nil)
	second := &models.Product{
		CategoryID:  first.CategoryID,
		Slug:        "arsenal-away-2025-26",
		TitleJSON:   models.JSON{"en-US": "Arsenal Away Shirt"},
		Team:        "Arsenal",
		Season:      "2025-26",
		KitType:     models.KitTypeAway,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		Sizes:       models.StringArray{"M", "L"},
		Stock:       30,
		IsActive:    true,
	}
	if err := db.Create(second).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	products, total, err := svc.List(repository.ProductListFilter{Team: "Arsenal", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 products for team filter, got %d", total)
	}

	products, total, err = svc.List(repository.ProductListFilter{KitType: models.KitTypeHome, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || products[0].ID != first.ID {
		t.Fatalf("kit type filter mismatch: total=%d", total)
	}
}
