package admin

import (
	"errors"
	"strconv"

	"github.com/kitlane/internal/http/response"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"
	"github.com/kitlane/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DiscountRuleRequest 折扣规则请求（创建与更新共用）
type DiscountRuleRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Type               string   `json:"type" binding:"required"`
	Priority           int      `json:"priority"`
	IsActive           *bool    `json:"is_active"`
	StartsAt           string   `json:"starts_at"`
	EndsAt             string   `json:"ends_at"`
	MaxUses            int      `json:"max_uses"`
	ProductIDs         []uint   `json:"product_ids"`
	Categories         []string `json:"categories"`
	ExcludedProductIDs []uint   `json:"excluded_product_ids"`
	MinQuantity        int      `json:"min_quantity"`
	MaxQuantity        int      `json:"max_quantity"`
	Percent            float64  `json:"percent"`
	Amount             float64  `json:"amount"`
	BuyQuantity        int      `json:"buy_quantity"`
	FreeQuantity       int      `json:"free_quantity"`
}

func (req DiscountRuleRequest) toInput() (service.DiscountRuleInput, error) {
	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		return service.DiscountRuleInput{}, err
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		return service.DiscountRuleInput{}, err
	}
	return service.DiscountRuleInput{
		Name:               req.Name,
		Description:        req.Description,
		Type:               req.Type,
		Priority:           req.Priority,
		IsActive:           req.IsActive,
		StartsAt:           startsAt,
		EndsAt:             endsAt,
		MaxUses:            req.MaxUses,
		ProductIDs:         req.ProductIDs,
		Categories:         req.Categories,
		ExcludedProductIDs: req.ExcludedProductIDs,
		MinQuantity:        req.MinQuantity,
		MaxQuantity:        req.MaxQuantity,
		Percent:            models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Percent)),
		Amount:             models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Amount)),
		BuyQuantity:        req.BuyQuantity,
		FreeQuantity:       req.FreeQuantity,
	}, nil
}

// CreateDiscountRule 创建折扣规则
func (h *Handler) CreateDiscountRule(c *gin.Context) {
	var req DiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	rule, err := h.DiscountAdminService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRuleTypeInvalid):
			respondError(c, response.CodeBadRequest, "error.rule_type_invalid", nil)
		case errors.Is(err, service.ErrRuleParamsInvalid):
			respondError(c, response.CodeBadRequest, "error.rule_params_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, rule)
}

// UpdateDiscountRule 更新折扣规则
func (h *Handler) UpdateDiscountRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req DiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	rule, err := h.DiscountAdminService.Update(uint(ruleID), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRuleNotFound):
			respondError(c, response.CodeNotFound, "error.rule_not_found", nil)
		case errors.Is(err, service.ErrRuleTypeInvalid):
			respondError(c, response.CodeBadRequest, "error.rule_type_invalid", nil)
		case errors.Is(err, service.ErrRuleParamsInvalid):
			respondError(c, response.CodeBadRequest, "error.rule_params_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, rule)
}

// DeleteDiscountRule 删除折扣规则
func (h *Handler) DeleteDiscountRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.DiscountAdminService.Delete(uint(ruleID)); err != nil {
		switch {
		case errors.Is(err, service.ErrRuleNotFound):
			respondError(c, response.CodeNotFound, "error.rule_not_found", nil)
		case errors.Is(err, service.ErrRuleInUse):
			respondError(c, response.CodeConflict, "error.rule_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{
		"deleted": true,
	})
}

// GetAdminDiscountRule 获取折扣规则详情
func (h *Handler) GetAdminDiscountRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rule, err := h.DiscountAdminService.Get(uint(ruleID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRuleNotFound):
			respondError(c, response.CodeNotFound, "error.rule_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, rule)
}

// GetAdminDiscountRules 获取折扣规则列表
func (h *Handler) GetAdminDiscountRules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isActive = &parsed
	}

	rules, total, err := h.DiscountAdminService.List(repository.DiscountRuleListFilter{
		Type:     c.Query("type"),
		IsActive: isActive,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, rules, pagination)
}
