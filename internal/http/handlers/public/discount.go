package public

import (
	"github.com/kitlane/internal/http/response"
	"github.com/kitlane/internal/service"

	"github.com/gin-gonic/gin"
)

// ValidateDiscount 试算指定商品与数量可命中的最优折扣。
// 只读评估，不消耗规则使用次数。
func (h *Handler) ValidateDiscount(c *gin.Context) {
	var req service.ValidateDiscountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	applied, err := h.DiscountService.Validate(req)
	if err != nil {
		respondWithMappedError(c, err, discountValidateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if applied == nil {
		response.Success(c, gin.H{"matched": false})
		return
	}
	response.Success(c, gin.H{
		"matched":         true,
		"rule":            applied.Rule,
		"discount_amount": applied.Amount,
	})
}
