package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DiscountRule{},
		&models.RuleUsage{},
		&models.Post{},
	)
	if err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
	return db
}

func newCartService(db *gorm.DB) *CartService {
	productRepo := repository.NewProductRepository(db)
	ruleRepo := repository.NewDiscountRuleRepository(db)
	return NewCartService(
		repository.NewCartRepository(db),
		productRepo,
		NewDiscountService(ruleRepo, productRepo),
	)
}

func seedJersey(t *testing.T, db *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()

	category := &models.Category{
		Slug:     "club",
		NameJSON: models.JSON{"zh-CN": "俱乐部", "en-US": "Club"},
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product := &models.Product{
		CategoryID:       category.ID,
		Slug:             "arsenal-home-2025-26",
		TitleJSON:        models.JSON{"zh-CN": "阿森纳主场球衣", "en-US": "Arsenal Home Shirt"},
		Team:             "Arsenal",
		Season:           "2025-26",
		KitType:          models.KitTypeHome,
		PriceAmount:      models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		Sizes:            models.StringArray{"S", "M", "L", "XL"},
		Customizable:     true,
		CustomizationFee: models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		Patches:          models.StringArray{"premier-league", "champions-league"},
		Stock:            50,
		IsActive:         true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartAddItemMergesIdenticalLines(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, nil)

	number := 7
	first, err := svc.AddItem(AddItemInput{
		UserID:       1,
		ProductID:    product.ID,
		Size:         "m",
		Quantity:     1,
		PlayerName:   "SAKA",
		PlayerNumber: &number,
		Patches:      []string{"premier-league"},
	})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if first.Size != "M" {
		t.Fatalf("size should be normalized to upper case, got %s", first.Size)
	}

	second, err := svc.AddItem(AddItemInput{
		UserID:       1,
		ProductID:    product.ID,
		Size:         "M",
		Quantity:     2,
		PlayerName:   "SAKA",
		PlayerNumber: &number,
		Patches:      []string{"premier-league"},
	})
	if err != nil {
		t.Fatalf("add duplicate item failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("identical line should merge, got new id %d", second.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", second.Quantity)
	}

	// different customization gets its own line
	other := 11
	third, err := svc.AddItem(AddItemInput{
		UserID:       1,
		ProductID:    product.ID,
		Size:         "M",
		Quantity:     1,
		PlayerName:   "MARTINELLI",
		PlayerNumber: &other,
	})
	if err != nil {
		t.Fatalf("add different item failed: %v", err)
	}
	if third.ID == first.ID {
		t.Fatalf("different customization must not merge")
	}
}

func TestCartAddItemValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, nil)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 0}); err != ErrQuantityInvalid {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: 9999, Size: "M", Quantity: 1}); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "XXXL", Quantity: 1}); err != ErrSizeInvalid {
		t.Fatalf("expected ErrSizeInvalid, got %v", err)
	}

	tooLong := strings.Repeat("A", constants.PlayerNameMaxLength+1)
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1, PlayerName: tooLong}); err != ErrCustomizationInvalid {
		t.Fatalf("expected ErrCustomizationInvalid for long name, got %v", err)
	}
	badNumber := 100
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1, PlayerNumber: &badNumber}); err != ErrCustomizationInvalid {
		t.Fatalf("expected ErrCustomizationInvalid for number out of range, got %v", err)
	}
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1, Patches: []string{"world-cup"}}); err != ErrCustomizationInvalid {
		t.Fatalf("expected ErrCustomizationInvalid for unknown patch, got %v", err)
	}
}

func TestCartAddItemRejectsCustomizationOnPlainShirt(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, func(p *models.Product) {
		p.Slug = "milan-home-1994"
		p.Customizable = false
	})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1, PlayerName: "MALDINI"}); err != ErrCustomizationInvalid {
		t.Fatalf("expected ErrCustomizationInvalid, got %v", err)
	}

	// the same shirt without customization is fine
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("plain add failed: %v", err)
	}
}

func TestCartAddItemInactiveProduct(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, func(p *models.Product) { p.IsActive = false })

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1}); err != ErrProductUnavailable {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestCartUpdateAndRemove(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, nil)

	item, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "L", Quantity: 1})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	updated, err := svc.UpdateQuantity(item.ID, 1, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", updated.Quantity)
	}

	if _, err := svc.UpdateQuantity(item.ID, 1, 0); err != ErrQuantityInvalid {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := svc.UpdateQuantity(item.ID, 2, 1); err != ErrCartItemNotFound {
		t.Fatalf("other user's item must not be visible, got %v", err)
	}
	if err := svc.RemoveItem(item.ID, 2); err != ErrCartItemNotFound {
		t.Fatalf("other user's item must not be removable, got %v", err)
	}

	if err := svc.RemoveItem(item.ID, 1); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if err := svc.RemoveItem(item.ID, 1); err != ErrCartItemNotFound {
		t.Fatalf("expected ErrCartItemNotFound after removal, got %v", err)
	}
}

func TestCartViewDiscountPreviewDoesNotConsumeUsage(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, nil)

	rule := &models.DiscountRule{
		Name:       "Club 10% off",
		Type:       constants.RuleTypePercentageOff,
		IsActive:   true,
		Priority:   10,
		MaxUses:    5,
		Categories: models.StringArray{"club"},
		Percent:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("create rule failed: %v", err)
	}

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	view, err := svc.View(1)
	if err != nil {
		t.Fatalf("build cart view failed: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Lines))
	}
	line := view.Lines[0]
	if !line.Subtotal.Decimal.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("expected subtotal 160.00, got %s", line.Subtotal.Decimal.String())
	}
	if line.AppliedRuleID == nil || *line.AppliedRuleID != rule.ID {
		t.Fatalf("category rule should apply to preview, got %v", line.AppliedRuleID)
	}
	if !line.DiscountAmount.Decimal.Equal(decimal.NewFromInt(16)) {
		t.Fatalf("expected discount 16.00, got %s", line.DiscountAmount.Decimal.String())
	}
	if !view.TotalAmount.Decimal.Equal(decimal.NewFromInt(144)) {
		t.Fatalf("expected total 144.00, got %s", view.TotalAmount.Decimal.String())
	}

	var got models.DiscountRule
	if err := db.First(&got, rule.ID).Error; err != nil {
		t.Fatalf("reload rule failed: %v", err)
	}
	if got.CurrentUses != 0 {
		t.Fatalf("cart preview must not consume usage, got current_uses=%d", got.CurrentUses)
	}
}

func TestCartViewCustomizationFee(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newCartService(db)
	product := seedJersey(t, db, nil)

	number := 9
	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Size: "M", Quantity: 1, PlayerName: "JESUS", PlayerNumber: &number}); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	view, err := svc.View(1)
	if err != nil {
		t.Fatalf("build cart view failed: %v", err)
	}
	// 80 base + 15 printing fee
	if !view.Lines[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(95)) {
		t.Fatalf("expected unit price 95.00, got %s", view.Lines[0].UnitPrice.Decimal.String())
	}
}
