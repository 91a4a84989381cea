package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项，定制信息在加购时即固定
type CartItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID       uint           `gorm:"not null;index" json:"user_id"`           // 用户ID
	ProductID    uint           `gorm:"not null;index" json:"product_id"`        // 商品ID
	Size         string         `gorm:"type:varchar(10);not null" json:"size"`   // 尺码
	Quantity     int            `gorm:"not null" json:"quantity"`                // 数量
	PlayerName   string         `gorm:"type:varchar(32)" json:"player_name"`     // 印字（球员名）
	PlayerNumber *int           `gorm:"" json:"player_number"`                   // 印号（0-99，空表示不印号）
	PatchRefs    StringArray    `gorm:"type:json" json:"patches"`                // 选配徽章
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                 // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// Customized 判断该条目是否包含印制内容
func (c *CartItem) Customized() bool {
	return c.PlayerName != "" || c.PlayerNumber != nil || len(c.PatchRefs) > 0
}
