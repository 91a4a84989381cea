package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 折扣规则类型常量
const (
	RuleTypeQuantityBased  = "quantity_based"
	RuleTypeBuyXGetY       = "buy_x_get_y"
	RuleTypePercentageOff  = "percentage_off"
	RuleTypeFixedAmountOff = "fixed_amount_off"
)

// RuleTypes 支持的折扣规则类型集合
var RuleTypes = []string{
	RuleTypeQuantityBased,
	RuleTypeBuyXGetY,
	RuleTypePercentageOff,
	RuleTypeFixedAmountOff,
}

// IsValidRuleType 判断折扣规则类型是否合法
func IsValidRuleType(ruleType string) bool {
	for _, t := range RuleTypes {
		if t == ruleType {
			return true
		}
	}
	return false
}

// 文章类型常量
const (
	PostTypeBlog   = "blog"
	PostTypeNotice = "notice"
)

// 球衣定制常量
const (
	PlayerNameMaxLength = 16
	PlayerNumberMin     = 0
	PlayerNumberMax     = 99
)

// 队列常量
const (
	QueueDefault             = "default"
	TaskOrderTimeoutCancel   = "order:timeout_cancel"
	TaskDiscountExpireSweep  = "discount:expire_sweep"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "kl"
)

// 足球数据代理缓存键前缀
const (
	FootballCachePrefix = "football"
)

// 币种常量
const (
	SiteCurrencyDefault = "EUR"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS}
