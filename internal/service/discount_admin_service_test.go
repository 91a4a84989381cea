package service

import (
	"testing"
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newDiscountAdminService(db *gorm.DB) *DiscountAdminService {
	return NewDiscountAdminService(
		repository.NewDiscountRuleRepository(db),
		repository.NewRuleUsageRepository(db),
	)
}

func percent(v int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(v))
}

func TestDiscountAdminCreateValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newDiscountAdminService(db)

	if _, err := svc.Create(DiscountRuleInput{Type: constants.RuleTypePercentageOff, Percent: percent(10)}); err != ErrRuleParamsInvalid {
		t.Fatalf("blank name must be rejected, got %v", err)
	}
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: "coupon"}); err != ErrRuleTypeInvalid {
		t.Fatalf("unknown type must be rejected, got %v", err)
	}
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: constants.RuleTypePercentageOff, Percent: percent(0)}); err != ErrRuleParamsInvalid {
		t.Fatalf("zero percent must be rejected, got %v", err)
	}
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: constants.RuleTypePercentageOff, Percent: percent(101)}); err != ErrRuleParamsInvalid {
		t.Fatalf("percent above 100 must be rejected, got %v", err)
	}
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: constants.RuleTypeFixedAmountOff, Amount: percent(0)}); err != ErrRuleParamsInvalid {
		t.Fatalf("non-positive amount must be rejected, got %v", err)
	}
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: constants.RuleTypeBuyXGetY, BuyQuantity: 2}); err != ErrRuleParamsInvalid {
		t.Fatalf("missing free quantity must be rejected, got %v", err)
	}
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: constants.RuleTypeQuantityBased, MinQuantity: 5, MaxQuantity: 3, Percent: percent(10)}); err != ErrRuleParamsInvalid {
		t.Fatalf("max below min must be rejected, got %v", err)
	}

	starts := time.Now()
	ends := starts.Add(-time.Hour)
	if _, err := svc.Create(DiscountRuleInput{Name: "x", Type: constants.RuleTypePercentageOff, Percent: percent(10), StartsAt: &starts, EndsAt: &ends}); err != ErrRuleParamsInvalid {
		t.Fatalf("ends before starts must be rejected, got %v", err)
	}

	rule, err := svc.Create(DiscountRuleInput{
		Name:    " Club Sale ",
		Type:    "Percentage_Off",
		Percent: percent(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rule.Name != "Club Sale" {
		t.Fatalf("name must be trimmed, got %q", rule.Name)
	}
	if rule.Type != constants.RuleTypePercentageOff {
		t.Fatalf("type must be normalized, got %s", rule.Type)
	}
	if !rule.IsActive {
		t.Fatalf("rules default to active")
	}
}

func TestDiscountAdminUpdateSwitchesTypeCleanly(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newDiscountAdminService(db)

	rule, err := svc.Create(DiscountRuleInput{
		Name:        "Bulk buy",
		Type:        constants.RuleTypeQuantityBased,
		MinQuantity: 3,
		MaxQuantity: 10,
		Percent:     percent(15),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(rule.ID, DiscountRuleInput{
		Name:        "Bulk buy",
		Type:        constants.RuleTypeBuyXGetY,
		BuyQuantity: 2,
		FreeQuantity: 1,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.BuyQuantity != 2 || updated.FreeQuantity != 1 {
		t.Fatalf("new type params not set: %+v", updated)
	}
	// old type's params must not leak through the switch
	if updated.MinQuantity != 0 || updated.MaxQuantity != 0 || !updated.Percent.Decimal.IsZero() {
		t.Fatalf("stale params must be cleared: min=%d max=%d percent=%s", updated.MinQuantity, updated.MaxQuantity, updated.Percent.Decimal.String())
	}

	if _, err := svc.Update(99999, DiscountRuleInput{Name: "x", Type: constants.RuleTypePercentageOff, Percent: percent(10)}); err != ErrRuleNotFound {
		t.Fatalf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestDiscountAdminUpdateRejectsCapBelowConsumed(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newDiscountAdminService(db)
	ruleRepo := repository.NewDiscountRuleRepository(db)

	rule, err := svc.Create(DiscountRuleInput{
		Name:    "Capped",
		Type:    constants.RuleTypePercentageOff,
		Percent: percent(10),
		MaxUses: 5,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		ok, err := ruleRepo.ConsumeUsage(rule.ID)
		if err != nil || !ok {
			t.Fatalf("consume usage failed: ok=%v err=%v", ok, err)
		}
	}

	// lowering the cap below consumed uses would persist current_uses > max_uses
	if _, err := svc.Update(rule.ID, DiscountRuleInput{
		Name:    "Capped",
		Type:    constants.RuleTypePercentageOff,
		Percent: percent(10),
		MaxUses: 1,
	}); err != ErrRuleParamsInvalid {
		t.Fatalf("cap below consumed uses must be rejected, got %v", err)
	}
	reloaded, err := ruleRepo.GetByID(rule.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.MaxUses != 5 || reloaded.CurrentUses != 3 {
		t.Fatalf("rule must be unchanged, got max_uses=%d current_uses=%d", reloaded.MaxUses, reloaded.CurrentUses)
	}

	// lowering to exactly the consumed count keeps the invariant and is allowed
	updated, err := svc.Update(rule.ID, DiscountRuleInput{
		Name:    "Capped",
		Type:    constants.RuleTypePercentageOff,
		Percent: percent(10),
		MaxUses: 3,
	})
	if err != nil {
		t.Fatalf("update to consumed count failed: %v", err)
	}
	if updated.MaxUses != 3 || updated.CurrentUses != 3 {
		t.Fatalf("want max_uses=3 current_uses=3, got max_uses=%d current_uses=%d", updated.MaxUses, updated.CurrentUses)
	}

	// switching to unlimited is always allowed
	if _, err := svc.Update(rule.ID, DiscountRuleInput{
		Name:    "Capped",
		Type:    constants.RuleTypePercentageOff,
		Percent: percent(10),
		MaxUses: 0,
	}); err != nil {
		t.Fatalf("update to unlimited failed: %v", err)
	}
}

func TestDiscountAdminDeleteGuardsUsedRules(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newDiscountAdminService(db)

	rule, err := svc.Create(DiscountRuleInput{Name: "Used", Type: constants.RuleTypePercentageOff, Percent: percent(10)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	usage := &models.RuleUsage{RuleID: rule.ID, UserID: 1, OrderID: 1, ProductID: 1}
	if err := db.Create(usage).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	if err := svc.Delete(rule.ID); err != ErrRuleInUse {
		t.Fatalf("referenced rule must not be deletable, got %v", err)
	}

	fresh, err := svc.Create(DiscountRuleInput{Name: "Fresh", Type: constants.RuleTypePercentageOff, Percent: percent(10)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(fresh.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(fresh.ID); err != ErrRuleNotFound {
		t.Fatalf("deleted rule must be gone, got %v", err)
	}
	if err := svc.Delete(99999); err != ErrRuleNotFound {
		t.Fatalf("expected ErrRuleNotFound, got %v", err)
	}
}
