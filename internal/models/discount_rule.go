package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountRule 折扣规则
//
// 类型参数按规则类型取用：
//   - quantity_based：MinQuantity / MaxQuantity / Percent
//   - buy_x_get_y：BuyQuantity / FreeQuantity
//   - percentage_off：Percent
//   - fixed_amount_off：Amount
type DiscountRule struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"not null" json:"name"`                               // 规则名称
	Description string         `gorm:"type:text" json:"description"`                       // 规则说明
	Type        string         `gorm:"type:varchar(32);not null;index" json:"type"`        // 规则类型
	Priority    int            `gorm:"not null;default:0;index" json:"priority"`           // 优先级（越大越优先）
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`       // 是否启用
	StartsAt    *time.Time     `gorm:"index" json:"starts_at"`                             // 生效时间（空表示立即生效）
	EndsAt      *time.Time     `gorm:"index" json:"ends_at"`                               // 失效时间（空表示长期有效）
	MaxUses     int            `gorm:"not null;default:0" json:"max_uses"`                 // 总使用上限（0 表示不限制）
	CurrentUses int            `gorm:"not null;default:0" json:"current_uses"`             // 已使用次数
	ProductIDs  UintArray      `gorm:"type:json" json:"product_ids"`                       // 适用商品ID集合（空表示不限）
	Categories  StringArray    `gorm:"type:json" json:"categories"`                        // 适用分类标识集合（空表示不限）
	ExcludedProductIDs UintArray `gorm:"type:json" json:"excluded_product_ids"`            // 排除商品ID集合（命中即不适用）
	MinQuantity int            `gorm:"not null;default:0" json:"min_quantity"`             // 数量下限（quantity_based）
	MaxQuantity int            `gorm:"not null;default:0" json:"max_quantity"`             // 数量上限（0 表示不限）
	Percent     Money          `gorm:"type:decimal(5,2);not null;default:0" json:"percent"` // 折扣百分比（0-100）
	Amount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 固定优惠金额
	BuyQuantity int            `gorm:"not null;default:0" json:"buy_quantity"`             // 购买数量（buy_x_get_y）
	FreeQuantity int           `gorm:"not null;default:0" json:"free_quantity"`            // 赠送数量（buy_x_get_y）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (DiscountRule) TableName() string {
	return "discount_rules"
}

// UsageExhausted 判断使用次数是否已耗尽
func (r *DiscountRule) UsageExhausted() bool {
	return r.MaxUses > 0 && r.CurrentUses >= r.MaxUses
}
