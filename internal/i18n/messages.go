package i18n

import "github.com/kitlane/internal/constants"

// messages 各语言文案表，key 采用 error.* / msg.* 约定
var messages = map[string]map[string]string{
	constants.LocaleZhCN: {
		"error.bad_request":            "请求参数不合法",
		"error.unauthorized":           "请先登录",
		"error.forbidden":              "没有操作权限",
		"error.not_found":              "资源不存在",
		"error.conflict":               "资源状态冲突",
		"error.internal":               "服务器内部错误",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务暂不可用",
		"error.jwt_secret_missing":     "服务端令牌密钥未配置",
		"error.auth_header_missing":    "缺少认证头",
		"error.auth_header_invalid":    "认证头格式错误",
		"error.token_invalid":          "令牌无效或已过期",
		"error.user_id_invalid":        "用户标识不合法",
		"error.user_id_type_invalid":   "用户标识类型错误",
		"error.admin_id_invalid":       "管理员标识不合法",
		"error.admin_id_type_invalid":  "管理员标识类型错误",
		"error.category_not_found":     "分类不存在",
		"error.category_invalid":       "分类参数不合法",
		"error.product_not_found":      "商品不存在",
		"error.product_invalid":        "商品参数不合法",
		"error.product_unavailable":    "商品已下架",
		"error.size_invalid":           "尺码不可用",
		"error.customization_invalid":  "定制信息不合法",
		"error.cart_item_not_found":    "购物车条目不存在",
		"error.cart_empty":             "购物车为空",
		"error.quantity_invalid":       "数量不合法",
		"error.order_not_found":        "订单不存在",
		"error.order_transition_invalid": "订单状态不允许该变更",
		"error.refund_not_allowed":     "当前订单状态不允许退款",
		"error.rule_not_found":         "折扣规则不存在",
		"error.rule_type_invalid":      "折扣规则类型不支持",
		"error.rule_params_invalid":    "折扣规则参数不合法",
		"error.rule_unavailable":       "折扣规则已不可用",
		"error.rule_in_use":            "折扣规则已被订单引用，无法删除",
		"error.post_not_found":         "文章不存在",
		"error.post_invalid":           "文章参数不合法",
		"error.football_upstream":      "足球数据服务暂不可用",
		"error.football_not_found":     "足球数据不存在",
		"msg.rule_validated":           "共校验 %d 条折扣规则",
	},
	constants.LocaleEnUS: {
		"error.bad_request":            "invalid request parameters",
		"error.unauthorized":           "authentication required",
		"error.forbidden":              "permission denied",
		"error.not_found":              "resource not found",
		"error.conflict":               "resource state conflict",
		"error.internal":               "internal server error",
		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter is unavailable",
		"error.jwt_secret_missing":     "server token secret is not configured",
		"error.auth_header_missing":    "missing authorization header",
		"error.auth_header_invalid":    "malformed authorization header",
		"error.token_invalid":          "token is invalid or expired",
		"error.user_id_invalid":        "invalid user identity",
		"error.user_id_type_invalid":   "unexpected user identity type",
		"error.admin_id_invalid":       "invalid admin identity",
		"error.admin_id_type_invalid":  "unexpected admin identity type",
		"error.category_not_found":     "category not found",
		"error.category_invalid":       "invalid category parameters",
		"error.product_not_found":      "product not found",
		"error.product_invalid":        "invalid product parameters",
		"error.product_unavailable":    "product is unavailable",
		"error.size_invalid":           "size is not available",
		"error.customization_invalid":  "invalid customization",
		"error.cart_item_not_found":    "cart item not found",
		"error.cart_empty":             "cart is empty",
		"error.quantity_invalid":       "invalid quantity",
		"error.order_not_found":        "order not found",
		"error.order_transition_invalid": "order status transition not allowed",
		"error.refund_not_allowed":     "order status does not allow a refund",
		"error.rule_not_found":         "discount rule not found",
		"error.rule_type_invalid":      "unsupported discount rule type",
		"error.rule_params_invalid":    "invalid discount rule parameters",
		"error.rule_unavailable":       "discount rule is no longer available",
		"error.rule_in_use":            "discount rule is referenced by orders and cannot be deleted",
		"error.post_not_found":         "post not found",
		"error.post_invalid":           "invalid post parameters",
		"error.football_upstream":      "football data service is unavailable",
		"error.football_not_found":     "football data not found",
		"msg.rule_validated":           "validated %d discount rules",
	},
}
