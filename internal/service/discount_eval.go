package service

import (
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"

	"github.com/shopspring/decimal"
)

// RuleContext 折扣评估上下文，对应一条购物车/订单行
type RuleContext struct {
	ProductID uint
	Category  string
	Quantity  int
	UnitPrice models.Money
	Now       time.Time
}

// AppliedDiscount 折扣评估结果
type AppliedDiscount struct {
	Rule   *models.DiscountRule `json:"rule"`
	Amount models.Money         `json:"amount"`
}

// RuleMatches 判断规则对该行是否适用，纯函数，不产生副作用。
// 缺省的可选字段一律按"无约束"处理。
func RuleMatches(rule *models.DiscountRule, ctx RuleContext) bool {
	if rule == nil || !rule.IsActive {
		return false
	}
	if rule.StartsAt != nil && ctx.Now.Before(*rule.StartsAt) {
		return false
	}
	if rule.EndsAt != nil && ctx.Now.After(*rule.EndsAt) {
		return false
	}
	if rule.UsageExhausted() {
		return false
	}
	if rule.ExcludedProductIDs.Contains(ctx.ProductID) {
		return false
	}
	if !matchesScope(rule, ctx) {
		return false
	}
	// 数量区间只约束 quantity_based；buy_x_get_y 的数量门槛体现在
	// 计算结果上（不足一个周期时金额为零），不在此处拦截。
	if rule.Type == constants.RuleTypeQuantityBased {
		if ctx.Quantity < rule.MinQuantity {
			return false
		}
		if rule.MaxQuantity > 0 && ctx.Quantity > rule.MaxQuantity {
			return false
		}
	}
	return true
}

// matchesScope 校验商品/分类适用范围。两个集合都为空表示不限；
// 否则命中任一非空集合即视为适用。
func matchesScope(rule *models.DiscountRule, ctx RuleContext) bool {
	if len(rule.ProductIDs) == 0 && len(rule.Categories) == 0 {
		return true
	}
	if len(rule.ProductIDs) > 0 && rule.ProductIDs.Contains(ctx.ProductID) {
		return true
	}
	if len(rule.Categories) > 0 && rule.Categories.Contains(ctx.Category) {
		return true
	}
	return false
}

// CalculateDiscount 计算该行的折扣金额。结果非负且不超过行小计，
// 全程用 decimal 运算，只在最终结果做一次四舍五入（2 位小数）。
func CalculateDiscount(rule *models.DiscountRule, ctx RuleContext) models.Money {
	if rule == nil || ctx.Quantity <= 0 {
		return models.Money{}
	}
	quantity := decimal.NewFromInt(int64(ctx.Quantity))
	subtotal := ctx.UnitPrice.Decimal.Mul(quantity)

	var amount decimal.Decimal
	switch rule.Type {
	case constants.RuleTypePercentageOff, constants.RuleTypeQuantityBased:
		percent := rule.Percent.Decimal.Div(decimal.NewFromInt(100))
		amount = subtotal.Mul(percent)
	case constants.RuleTypeFixedAmountOff:
		amount = rule.Amount.Decimal
	case constants.RuleTypeBuyXGetY:
		cycle := rule.BuyQuantity + rule.FreeQuantity
		if cycle <= 0 || ctx.Quantity < cycle {
			return models.Money{}
		}
		freeUnits := (ctx.Quantity / cycle) * rule.FreeQuantity
		amount = ctx.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(freeUnits)))
	default:
		return models.Money{}
	}

	if amount.LessThan(decimal.Zero) {
		return models.Money{}
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return models.NewMoneyFromDecimal(amount)
}

// SelectBestRule 在候选规则中为该行挑选唯一胜出者：先过匹配器，
// 再计算金额，金额为零的跳过；优先级最高者胜出，同优先级取 ID
// 较小者，因此结果与候选顺序无关。无可用规则时返回 nil。
func SelectBestRule(rules []models.DiscountRule, ctx RuleContext) *AppliedDiscount {
	var best *AppliedDiscount
	for i := range rules {
		rule := &rules[i]
		if !RuleMatches(rule, ctx) {
			continue
		}
		amount := CalculateDiscount(rule, ctx)
		if !amount.Decimal.GreaterThan(decimal.Zero) {
			continue
		}
		if best == nil || betterRule(rule, best.Rule) {
			best = &AppliedDiscount{Rule: rule, Amount: amount}
		}
	}
	return best
}

func betterRule(candidate, incumbent *models.DiscountRule) bool {
	if candidate.Priority != incumbent.Priority {
		return candidate.Priority > incumbent.Priority
	}
	return candidate.ID < incumbent.ID
}
