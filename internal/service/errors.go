package service

import "errors"

// 服务层哨兵错误，handler 层据此映射响应码与文案
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInvalid  = errors.New("invalid category parameters")

	ErrProductNotFound      = errors.New("product not found")
	ErrProductInvalid       = errors.New("invalid product parameters")
	ErrProductUnavailable   = errors.New("product unavailable")
	ErrProductOutOfStock    = errors.New("product out of stock")
	ErrSizeInvalid          = errors.New("size not available")
	ErrCustomizationInvalid = errors.New("invalid customization")

	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrQuantityInvalid  = errors.New("invalid quantity")

	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderTransitionInvalid = errors.New("order status transition not allowed")
	ErrRefundNotAllowed       = errors.New("order status does not allow refund")

	ErrRuleNotFound      = errors.New("discount rule not found")
	ErrRuleTypeInvalid   = errors.New("unsupported discount rule type")
	ErrRuleParamsInvalid = errors.New("invalid discount rule parameters")
	ErrRuleUnavailable   = errors.New("discount rule no longer available")
	ErrRuleInUse         = errors.New("discount rule referenced by orders")

	ErrPostNotFound = errors.New("post not found")
	ErrPostInvalid  = errors.New("invalid post parameters")

	ErrFootballUpstream = errors.New("football data upstream unavailable")
	ErrFootballNotFound = errors.New("football data not found")
)
