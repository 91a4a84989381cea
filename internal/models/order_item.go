package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表，商品与定制信息在下单时做快照
type OrderItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                           // 主键
	OrderID          uint           `gorm:"index;not null" json:"order_id"`                                 // 订单ID
	ProductID        uint           `gorm:"index;not null" json:"product_id"`                               // 商品ID
	TitleJSON        JSON           `gorm:"type:json;not null" json:"title"`                                // 商品标题快照
	Team             string         `gorm:"type:varchar(100)" json:"team"`                                  // 球队快照
	Season           string         `gorm:"type:varchar(20)" json:"season"`                                 // 赛季快照
	Size             string         `gorm:"type:varchar(10);not null" json:"size"`                          // 尺码
	PlayerName       string         `gorm:"type:varchar(32)" json:"player_name"`                            // 印字快照
	PlayerNumber     *int           `gorm:"" json:"player_number"`                                          // 印号快照
	PatchRefs        StringArray    `gorm:"type:json" json:"patches"`                                       // 徽章快照
	CustomizationFee Money          `gorm:"type:decimal(20,2);not null;default:0" json:"customization_fee"` // 印制附加费（每件）
	UnitPrice        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`        // 单价（含附加费）
	Quantity         int            `gorm:"not null" json:"quantity"`                                       // 数量
	TotalPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`       // 小计
	AppliedRuleID    *uint          `gorm:"index" json:"applied_rule_id,omitempty"`                         // 命中的折扣规则ID
	RuleName         string         `gorm:"-" json:"rule_name,omitempty"`                                   // 折扣规则名称（仅展示）
	DiscountAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`   // 折扣金额
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
