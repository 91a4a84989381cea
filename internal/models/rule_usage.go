package models

import (
	"time"

	"gorm.io/gorm"
)

// RuleUsage 折扣规则使用记录
type RuleUsage struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	RuleID         uint           `gorm:"index;not null" json:"rule_id"`                                // 折扣规则ID
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	ProductID      uint           `gorm:"index;not null" json:"product_id"`                             // 商品ID
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 折扣金额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (RuleUsage) TableName() string {
	return "rule_usages"
}
