package service

import (
	"testing"
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"

	"github.com/shopspring/decimal"
)

func moneyFromFloat(v float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
}

func evalContext(productID uint, category string, quantity int, unitPrice float64) RuleContext {
	return RuleContext{
		ProductID: productID,
		Category:  category,
		Quantity:  quantity,
		UnitPrice: moneyFromFloat(unitPrice),
		Now:       time.Now(),
	}
}

func TestRuleMatchesInactiveNeverMatches(t *testing.T) {
	rule := &models.DiscountRule{
		Type:     constants.RuleTypePercentageOff,
		IsActive: false,
		Percent:  moneyFromFloat(10),
	}
	if RuleMatches(rule, evalContext(1, "club", 1, 100)) {
		t.Fatalf("inactive rule must not match")
	}
}

func TestRuleMatchesTimeWindow(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	notStarted := &models.DiscountRule{Type: constants.RuleTypePercentageOff, IsActive: true, StartsAt: &future, Percent: moneyFromFloat(10)}
	if RuleMatches(notStarted, evalContext(1, "", 1, 100)) {
		t.Fatalf("rule before starts_at must not match")
	}

	expired := &models.DiscountRule{Type: constants.RuleTypePercentageOff, IsActive: true, EndsAt: &past, Percent: moneyFromFloat(10)}
	if RuleMatches(expired, evalContext(1, "", 1, 100)) {
		t.Fatalf("rule after ends_at must not match")
	}

	open := &models.DiscountRule{Type: constants.RuleTypePercentageOff, IsActive: true, Percent: moneyFromFloat(10)}
	if !RuleMatches(open, evalContext(1, "", 1, 100)) {
		t.Fatalf("rule without window must match")
	}
}

func TestRuleMatchesUsageCap(t *testing.T) {
	rule := &models.DiscountRule{
		Type:        constants.RuleTypePercentageOff,
		IsActive:    true,
		MaxUses:     5,
		CurrentUses: 5,
		Percent:     moneyFromFloat(10),
	}
	if RuleMatches(rule, evalContext(1, "", 1, 100)) {
		t.Fatalf("rule with exhausted usage must not match")
	}
	rule.CurrentUses = 4
	if !RuleMatches(rule, evalContext(1, "", 1, 100)) {
		t.Fatalf("rule with remaining usage must match")
	}
	unlimited := &models.DiscountRule{Type: constants.RuleTypePercentageOff, IsActive: true, MaxUses: 0, CurrentUses: 1000, Percent: moneyFromFloat(10)}
	if !RuleMatches(unlimited, evalContext(1, "", 1, 100)) {
		t.Fatalf("max_uses=0 must be unlimited")
	}
}

func TestRuleMatchesExcludedProducts(t *testing.T) {
	rule := &models.DiscountRule{
		Type:               constants.RuleTypePercentageOff,
		IsActive:           true,
		Categories:         models.StringArray{"club"},
		ExcludedProductIDs: models.UintArray{7},
		Percent:            moneyFromFloat(10),
	}
	if RuleMatches(rule, evalContext(7, "club", 1, 100)) {
		t.Fatalf("excluded product must not match even inside category scope")
	}
	if !RuleMatches(rule, evalContext(8, "club", 1, 100)) {
		t.Fatalf("non-excluded product in category must match")
	}
}

func TestRuleMatchesScope(t *testing.T) {
	// both lists empty means no scope restriction
	open := &models.DiscountRule{Type: constants.RuleTypePercentageOff, IsActive: true, Percent: moneyFromFloat(10)}
	if !RuleMatches(open, evalContext(99, "anything", 1, 100)) {
		t.Fatalf("empty scope must match all")
	}

	// hitting any non-empty list is enough
	scoped := &models.DiscountRule{
		Type:       constants.RuleTypePercentageOff,
		IsActive:   true,
		ProductIDs: models.UintArray{1, 2},
		Categories: models.StringArray{"retro"},
		Percent:    moneyFromFloat(10),
	}
	if !RuleMatches(scoped, evalContext(2, "club", 1, 100)) {
		t.Fatalf("product id hit must match")
	}
	if !RuleMatches(scoped, evalContext(9, "retro", 1, 100)) {
		t.Fatalf("category hit must match")
	}
	if RuleMatches(scoped, evalContext(9, "club", 1, 100)) {
		t.Fatalf("no hit in either list must not match")
	}
}

func TestRuleMatchesQuantityRangeOnlyForQuantityBased(t *testing.T) {
	qty := &models.DiscountRule{
		Type:        constants.RuleTypeQuantityBased,
		IsActive:    true,
		MinQuantity: 3,
		MaxQuantity: 10,
		Percent:     moneyFromFloat(15),
	}
	if RuleMatches(qty, evalContext(1, "", 2, 100)) {
		t.Fatalf("below min_quantity must not match")
	}
	if RuleMatches(qty, evalContext(1, "", 11, 100)) {
		t.Fatalf("above max_quantity must not match")
	}
	if !RuleMatches(qty, evalContext(1, "", 3, 100)) {
		t.Fatalf("at min_quantity must match")
	}

	// quantity range fields only apply to quantity_based rules
	pct := &models.DiscountRule{
		Type:        constants.RuleTypePercentageOff,
		IsActive:    true,
		MinQuantity: 3,
		Percent:     moneyFromFloat(10),
	}
	if !RuleMatches(pct, evalContext(1, "", 1, 100)) {
		t.Fatalf("quantity range must not gate percentage_off")
	}
}

func TestCalculateDiscountPercentage(t *testing.T) {
	rule := &models.DiscountRule{Type: constants.RuleTypePercentageOff, IsActive: true, Percent: moneyFromFloat(20)}
	got := CalculateDiscount(rule, evalContext(1, "", 3, 10))
	if !got.Decimal.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected 6.00, got %s", got.Decimal.String())
	}
}

func TestCalculateDiscountFixedAmountClamped(t *testing.T) {
	rule := &models.DiscountRule{Type: constants.RuleTypeFixedAmountOff, IsActive: true, Amount: moneyFromFloat(50)}
	got := CalculateDiscount(rule, evalContext(1, "", 1, 30))
	if !got.Decimal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("fixed discount must be clamped to subtotal, got %s", got.Decimal.String())
	}
	got = CalculateDiscount(rule, evalContext(1, "", 2, 40))
	if !got.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected 50.00, got %s", got.Decimal.String())
	}
}

func TestCalculateDiscountBuyXGetY(t *testing.T) {
	rule := &models.DiscountRule{Type: constants.RuleTypeBuyXGetY, IsActive: true, BuyQuantity: 2, FreeQuantity: 1}

	// qty 5 completes one 2+1 cycle, one free unit
	got := CalculateDiscount(rule, evalContext(1, "", 5, 80))
	if !got.Decimal.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected 80.00 for qty 5, got %s", got.Decimal.String())
	}

	// qty 6 completes two cycles
	got = CalculateDiscount(rule, evalContext(1, "", 6, 80))
	if !got.Decimal.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("expected 160.00 for qty 6, got %s", got.Decimal.String())
	}

	// below one full cycle the discount is zero
	got = CalculateDiscount(rule, evalContext(1, "", 2, 80))
	if !got.Decimal.IsZero() {
		t.Fatalf("expected zero below one cycle, got %s", got.Decimal.String())
	}
}

func TestCalculateDiscountQuantityBasedRounding(t *testing.T) {
	rule := &models.DiscountRule{Type: constants.RuleTypeQuantityBased, IsActive: true, MinQuantity: 3, Percent: moneyFromFloat(15)}
	// 3 * 33.33 * 15% = 14.9985, rounded once to 15.00
	got := CalculateDiscount(rule, evalContext(1, "", 3, 33.33))
	if !got.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected 15.00, got %s", got.Decimal.String())
	}
}

func TestSelectBestRulePriorityWins(t *testing.T) {
	rules := []models.DiscountRule{
		{ID: 1, Type: constants.RuleTypePercentageOff, IsActive: true, Priority: 5, Percent: moneyFromFloat(50)},
		{ID: 2, Type: constants.RuleTypePercentageOff, IsActive: true, Priority: 10, Percent: moneyFromFloat(5)},
	}
	ctx := evalContext(1, "", 1, 100)

	best := SelectBestRule(rules, ctx)
	if best == nil || best.Rule.ID != 2 {
		t.Fatalf("higher priority must win regardless of amount, got %+v", best)
	}
	if !best.Amount.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected 5.00, got %s", best.Amount.Decimal.String())
	}

	// order of input must not matter
	reversed := []models.DiscountRule{rules[1], rules[0]}
	best2 := SelectBestRule(reversed, ctx)
	if best2 == nil || best2.Rule.ID != best.Rule.ID {
		t.Fatalf("selection must be permutation independent")
	}
}

func TestSelectBestRuleTieBreakLowestID(t *testing.T) {
	rules := []models.DiscountRule{
		{ID: 9, Type: constants.RuleTypePercentageOff, IsActive: true, Priority: 10, Percent: moneyFromFloat(10)},
		{ID: 3, Type: constants.RuleTypePercentageOff, IsActive: true, Priority: 10, Percent: moneyFromFloat(10)},
	}
	best := SelectBestRule(rules, evalContext(1, "", 1, 100))
	if best == nil || best.Rule.ID != 3 {
		t.Fatalf("tie must break to lowest id, got %+v", best)
	}
}

func TestSelectBestRuleSkipsZeroAmount(t *testing.T) {
	rules := []models.DiscountRule{
		// higher priority but zero amount below one cycle
		{ID: 1, Type: constants.RuleTypeBuyXGetY, IsActive: true, Priority: 20, BuyQuantity: 2, FreeQuantity: 1},
		{ID: 2, Type: constants.RuleTypePercentageOff, IsActive: true, Priority: 1, Percent: moneyFromFloat(10)},
	}
	best := SelectBestRule(rules, evalContext(1, "", 2, 100))
	if best == nil || best.Rule.ID != 2 {
		t.Fatalf("zero-amount rule must be skipped, got %+v", best)
	}
}

func TestSelectBestRuleNoCandidates(t *testing.T) {
	rules := []models.DiscountRule{
		{ID: 1, Type: constants.RuleTypePercentageOff, IsActive: false, Percent: moneyFromFloat(10)},
	}
	if best := SelectBestRule(rules, evalContext(1, "", 1, 100)); best != nil {
		t.Fatalf("expected nil, got %+v", best)
	}
}
