package models

import (
	"time"

	"gorm.io/gorm"
)

// 球衣版型常量
const (
	KitTypeHome       = "home"
	KitTypeAway       = "away"
	KitTypeThird      = "third"
	KitTypeGoalkeeper = "goalkeeper"
)

// Product 球衣商品表
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                         // 主键
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`                            // 分类ID
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`                             // 唯一标识
	TitleJSON        JSON           `gorm:"type:json;not null" json:"title"`                              // 多语言标题
	DescriptionJSON  JSON           `gorm:"type:json" json:"description"`                                 // 多语言描述
	Team             string         `gorm:"type:varchar(100);index" json:"team"`                          // 球队名称
	Season           string         `gorm:"type:varchar(20);index" json:"season"`                         // 赛季（如 2025-26）
	KitType          string         `gorm:"type:varchar(20);not null;default:'home'" json:"kit_type"`     // 版型（home/away/third/goalkeeper）
	PriceAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`    // 价格金额
	Sizes            StringArray    `gorm:"type:json" json:"sizes"`                                       // 可选尺码（S/M/L/XL/XXL）
	Images           StringArray    `gorm:"type:json" json:"images"`                                      // 图片数组
	Tags             StringArray    `gorm:"type:json" json:"tags"`                                        // 标签数组
	Customizable     bool           `gorm:"not null;default:true" json:"customizable"`                    // 是否支持印字印号
	CustomizationFee Money          `gorm:"type:decimal(20,2);not null;default:0" json:"customization_fee"` // 印制附加费（每件）
	Patches          StringArray    `gorm:"type:json" json:"patches"`                                     // 可选徽章
	Stock            int            `gorm:"not null;default:0" json:"stock"`                              // 库存数量
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`                          // 是否上架
	SortOrder        int            `gorm:"default:0;index" json:"sort_order"`                            // 排序权重
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// HasSize 判断商品是否提供指定尺码
func (p *Product) HasSize(size string) bool {
	return p.Sizes.Contains(size)
}
