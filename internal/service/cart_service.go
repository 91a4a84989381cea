package service

import (
	"strings"
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	discountSvc *DiscountService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, discountSvc *DiscountService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		discountSvc: discountSvc,
	}
}

// AddItemInput 加购输入
type AddItemInput struct {
	UserID       uint
	ProductID    uint
	Size         string
	Quantity     int
	PlayerName   string
	PlayerNumber *int
	Patches      []string
}

// CartLine 购物车行视图，折扣金额为展示性试算，不消耗使用次数
type CartLine struct {
	Item           models.CartItem `json:"item"`
	UnitPrice      models.Money    `json:"unit_price"`
	Subtotal       models.Money    `json:"subtotal"`
	DiscountAmount models.Money    `json:"discount_amount"`
	AppliedRuleID  *uint           `json:"applied_rule_id,omitempty"`
	RuleName       string          `json:"rule_name,omitempty"`
}

// CartView 购物车汇总视图
type CartView struct {
	Lines          []CartLine   `json:"lines"`
	OriginalAmount models.Money `json:"original_amount"`
	DiscountAmount models.Money `json:"discount_amount"`
	TotalAmount    models.Money `json:"total_amount"`
}

// AddItem 加入购物车，同商品同尺码同定制内容合并数量
func (s *CartService) AddItem(input AddItemInput) (*models.CartItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}
	size := strings.ToUpper(strings.TrimSpace(input.Size))
	if !product.HasSize(size) {
		return nil, ErrSizeInvalid
	}

	item := &models.CartItem{
		UserID:       input.UserID,
		ProductID:    input.ProductID,
		Size:         size,
		Quantity:     input.Quantity,
		PlayerName:   strings.TrimSpace(input.PlayerName),
		PlayerNumber: input.PlayerNumber,
		PatchRefs:    models.StringArray(input.Patches),
	}
	if err := validateCustomization(product, item); err != nil {
		return nil, err
	}

	existing, err := s.findMergeable(item)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += input.Quantity
		if err := s.cartRepo.UpdateQuantity(existing.ID, input.UserID, existing.Quantity); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 更新购物车行数量
func (s *CartService) UpdateQuantity(id, userID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	item, err := s.cartRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.UpdateQuantity(id, userID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(id, userID uint) error {
	item, err := s.cartRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByIDAndUser(id, userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// View 构建购物车视图，并逐行试算当前可得折扣
func (s *CartService) View(userID uint) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	view := &CartView{Lines: make([]CartLine, 0, len(items))}
	original := decimal.Zero
	discount := decimal.Zero

	for i := range items {
		item := items[i]
		if item.Product == nil {
			continue
		}
		unitPrice := item.Product.PriceAmount.Decimal
		if item.Customized() {
			unitPrice = unitPrice.Add(item.Product.CustomizationFee.Decimal)
		}
		unit := models.NewMoneyFromDecimal(unitPrice)
		subtotal := unit.MulInt(item.Quantity)

		line := CartLine{
			Item:      item,
			UnitPrice: unit,
			Subtotal:  subtotal,
		}

		applied, err := s.discountSvc.EvaluateLine(RuleContext{
			ProductID: item.ProductID,
			Category:  item.Product.Category.Slug,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			Now:       now,
		})
		if err != nil {
			return nil, err
		}
		if applied != nil {
			ruleID := applied.Rule.ID
			line.DiscountAmount = applied.Amount
			line.AppliedRuleID = &ruleID
			line.RuleName = applied.Rule.Name
			discount = discount.Add(applied.Amount.Decimal)
		}

		original = original.Add(subtotal.Decimal)
		view.Lines = append(view.Lines, line)
	}

	view.OriginalAmount = models.NewMoneyFromDecimal(original)
	view.DiscountAmount = models.NewMoneyFromDecimal(discount)
	view.TotalAmount = models.NewMoneyFromDecimal(original.Sub(discount))
	return view, nil
}

// findMergeable 查找同商品同尺码同定制内容的已有行
func (s *CartService) findMergeable(item *models.CartItem) (*models.CartItem, error) {
	existing, err := s.cartRepo.ListByUser(item.UserID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		candidate := &existing[i]
		if candidate.ProductID == item.ProductID &&
			candidate.Size == item.Size &&
			sameCustomization(candidate, item) {
			return candidate, nil
		}
	}
	return nil, nil
}

func sameCustomization(a, b *models.CartItem) bool {
	if a.PlayerName != b.PlayerName {
		return false
	}
	if (a.PlayerNumber == nil) != (b.PlayerNumber == nil) {
		return false
	}
	if a.PlayerNumber != nil && *a.PlayerNumber != *b.PlayerNumber {
		return false
	}
	if len(a.PatchRefs) != len(b.PatchRefs) {
		return false
	}
	for i := range a.PatchRefs {
		if a.PatchRefs[i] != b.PatchRefs[i] {
			return false
		}
	}
	return true
}

// validateCustomization 校验印字印号与徽章选择
func validateCustomization(product *models.Product, item *models.CartItem) error {
	if !item.Customized() {
		return nil
	}
	if !product.Customizable {
		return ErrCustomizationInvalid
	}
	if len(item.PlayerName) > constants.PlayerNameMaxLength {
		return ErrCustomizationInvalid
	}
	if item.PlayerNumber != nil && (*item.PlayerNumber < constants.PlayerNumberMin || *item.PlayerNumber > constants.PlayerNumberMax) {
		return ErrCustomizationInvalid
	}
	for _, patch := range item.PatchRefs {
		if !product.Patches.Contains(patch) {
			return ErrCustomizationInvalid
		}
	}
	return nil
}
