package public

import (
	"errors"

	"github.com/kitlane/internal/http/response"
	"github.com/kitlane/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var postErrorRules = []mappedHandlerError{
	{target: service.ErrPostNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrSizeInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrCustomizationInvalid, code: response.CodeBadRequest, key: "error.customization_invalid"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrProductOutOfStock, code: response.CodeConflict, key: "error.product_unavailable"},
	{target: service.ErrSizeInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrCustomizationInvalid, code: response.CodeBadRequest, key: "error.customization_invalid"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrRuleUnavailable, code: response.CodeConflict, key: "error.rule_unavailable"},
}

var discountValidateErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderTransitionInvalid, code: response.CodeBadRequest, key: "error.order_transition_invalid"},
}

var footballErrorRules = []mappedHandlerError{
	{target: service.ErrFootballNotFound, code: response.CodeNotFound, key: "error.football_not_found"},
	{target: service.ErrFootballUpstream, code: response.CodeInternal, key: "error.football_upstream"},
}
