package service

import (
	"time"

	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"
)

// DiscountService 折扣评估服务，只读评估，使用次数的消耗由下单流程负责
type DiscountService struct {
	ruleRepo    repository.DiscountRuleRepository
	productRepo repository.ProductRepository
}

// NewDiscountService 创建折扣评估服务
func NewDiscountService(ruleRepo repository.DiscountRuleRepository, productRepo repository.ProductRepository) *DiscountService {
	return &DiscountService{
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
	}
}

// EvaluateLine 为一条行项目挑选最优折扣，无可用折扣时返回 nil
func (s *DiscountService) EvaluateLine(ctx RuleContext) (*AppliedDiscount, error) {
	rules, err := s.ruleRepo.ListActive(ctx.Now)
	if err != nil {
		return nil, err
	}
	return SelectBestRule(rules, ctx), nil
}

// ValidateDiscountInput 折扣校验入参
type ValidateDiscountInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Category  string `json:"category"`
}

// Validate 按商品与数量试算折扣，不消耗使用次数。
// 分类未提供时回源商品信息补全。
func (s *DiscountService) Validate(input ValidateDiscountInput) (*AppliedDiscount, error) {
	if input.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	category := input.Category
	if category == "" && product.Category.ID != 0 {
		category = product.Category.Slug
	}

	ctx := RuleContext{
		ProductID: product.ID,
		Category:  category,
		Quantity:  input.Quantity,
		UnitPrice: product.PriceAmount,
		Now:       time.Now(),
	}
	return s.EvaluateLine(ctx)
}

// DeactivateExpiredRules 停用已过失效时间的规则，返回处理条数
func (s *DiscountService) DeactivateExpiredRules(now time.Time) (int64, error) {
	return s.ruleRepo.DeactivateExpired(now)
}

// GetRule 获取规则详情
func (s *DiscountService) GetRule(id uint) (*models.DiscountRule, error) {
	rule, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}
