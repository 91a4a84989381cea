package service

import (
	"strings"
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountAdminService 折扣规则管理服务
type DiscountAdminService struct {
	ruleRepo  repository.DiscountRuleRepository
	usageRepo repository.RuleUsageRepository
}

// NewDiscountAdminService 创建折扣规则管理服务
func NewDiscountAdminService(ruleRepo repository.DiscountRuleRepository, usageRepo repository.RuleUsageRepository) *DiscountAdminService {
	return &DiscountAdminService{
		ruleRepo:  ruleRepo,
		usageRepo: usageRepo,
	}
}

// DiscountRuleInput 折扣规则写入参数（创建与更新共用）
type DiscountRuleInput struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Type               string       `json:"type"`
	Priority           int          `json:"priority"`
	IsActive           *bool        `json:"is_active"`
	StartsAt           *time.Time   `json:"starts_at"`
	EndsAt             *time.Time   `json:"ends_at"`
	MaxUses            int          `json:"max_uses"`
	ProductIDs         []uint       `json:"product_ids"`
	Categories         []string     `json:"categories"`
	ExcludedProductIDs []uint       `json:"excluded_product_ids"`
	MinQuantity        int          `json:"min_quantity"`
	MaxQuantity        int          `json:"max_quantity"`
	Percent            models.Money `json:"percent"`
	Amount             models.Money `json:"amount"`
	BuyQuantity        int          `json:"buy_quantity"`
	FreeQuantity       int          `json:"free_quantity"`
}

// Create 创建折扣规则
func (s *DiscountAdminService) Create(input DiscountRuleInput) (*models.DiscountRule, error) {
	rule, err := buildRule(&models.DiscountRule{IsActive: true}, input)
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Update 更新折扣规则，类型字段按新类型整体覆盖
func (s *DiscountAdminService) Update(id uint, input DiscountRuleInput) (*models.DiscountRule, error) {
	if id == 0 {
		return nil, ErrRuleParamsInvalid
	}
	existing, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrRuleNotFound
	}

	rule, err := buildRule(existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete 删除折扣规则，已被订单引用的规则不允许删除
func (s *DiscountAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrRuleParamsInvalid
	}
	existing, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRuleNotFound
	}
	used, err := s.usageRepo.CountByRule(id)
	if err != nil {
		return err
	}
	if used > 0 {
		return ErrRuleInUse
	}
	return s.ruleRepo.Delete(id)
}

// Get 获取折扣规则详情
func (s *DiscountAdminService) Get(id uint) (*models.DiscountRule, error) {
	rule, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// List 获取折扣规则列表
func (s *DiscountAdminService) List(filter repository.DiscountRuleListFilter) ([]models.DiscountRule, int64, error) {
	return s.ruleRepo.List(filter)
}

// buildRule 校验输入并填充规则字段。与类型无关的字段先清零，
// 再按类型写入对应子集，保证切换类型时不残留旧参数。
func buildRule(rule *models.DiscountRule, input DiscountRuleInput) (*models.DiscountRule, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRuleParamsInvalid
	}
	ruleType := strings.ToLower(strings.TrimSpace(input.Type))
	if !constants.IsValidRuleType(ruleType) {
		return nil, ErrRuleTypeInvalid
	}
	if input.MaxUses < 0 || input.Priority < 0 {
		return nil, ErrRuleParamsInvalid
	}
	// 有上限时不允许低于已消耗次数
	if input.MaxUses > 0 && input.MaxUses < rule.CurrentUses {
		return nil, ErrRuleParamsInvalid
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrRuleParamsInvalid
	}

	rule.Name = name
	rule.Description = strings.TrimSpace(input.Description)
	rule.Type = ruleType
	rule.Priority = input.Priority
	rule.StartsAt = input.StartsAt
	rule.EndsAt = input.EndsAt
	rule.MaxUses = input.MaxUses
	rule.ProductIDs = models.UintArray(input.ProductIDs)
	rule.Categories = models.StringArray(input.Categories)
	rule.ExcludedProductIDs = models.UintArray(input.ExcludedProductIDs)
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}

	rule.MinQuantity = 0
	rule.MaxQuantity = 0
	rule.Percent = models.Money{}
	rule.Amount = models.Money{}
	rule.BuyQuantity = 0
	rule.FreeQuantity = 0

	switch ruleType {
	case constants.RuleTypeQuantityBased:
		if input.MinQuantity < 0 || (input.MaxQuantity > 0 && input.MaxQuantity < input.MinQuantity) {
			return nil, ErrRuleParamsInvalid
		}
		if !validPercent(input.Percent) {
			return nil, ErrRuleParamsInvalid
		}
		rule.MinQuantity = input.MinQuantity
		rule.MaxQuantity = input.MaxQuantity
		rule.Percent = input.Percent
	case constants.RuleTypePercentageOff:
		if !validPercent(input.Percent) {
			return nil, ErrRuleParamsInvalid
		}
		rule.Percent = input.Percent
	case constants.RuleTypeFixedAmountOff:
		if input.Amount.Decimal.LessThanOrEqual(decimal.Zero) {
			return nil, ErrRuleParamsInvalid
		}
		rule.Amount = input.Amount
	case constants.RuleTypeBuyXGetY:
		if input.BuyQuantity <= 0 || input.FreeQuantity <= 0 {
			return nil, ErrRuleParamsInvalid
		}
		rule.BuyQuantity = input.BuyQuantity
		rule.FreeQuantity = input.FreeQuantity
	}

	return rule, nil
}

func validPercent(p models.Money) bool {
	return p.Decimal.GreaterThan(decimal.Zero) && p.Decimal.LessThanOrEqual(decimal.NewFromInt(100))
}
