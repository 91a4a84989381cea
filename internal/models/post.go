package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 商城编辑内容：球队动态博客（blog）与商城公告（notice）。
// 标题、摘要、正文均为多语言 JSON，未发布的草稿只在后台可见。
type Post struct {
	ID          uint           `gorm:"primarykey" json:"id"`                    // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`        // 前台访问路径标识
	Type        string         `gorm:"not null;index" json:"type"`              // 类型（blog/notice）
	TitleJSON   JSON           `gorm:"type:json;not null" json:"title"`         // 多语言标题
	SummaryJSON JSON           `gorm:"type:json" json:"summary"`                // 多语言摘要，列表页展示
	ContentJSON JSON           `gorm:"type:json" json:"content"`                // 多语言正文
	Thumbnail   string         `json:"thumbnail"`                               // 封面图地址
	IsPublished bool           `gorm:"default:false;index" json:"is_published"` // 发布状态，false 为草稿
	PublishedAt *time.Time     `gorm:"index" json:"published_at"`               // 首次发布时间，重复保存不更新
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// Visible 前台是否可见
func (p *Post) Visible() bool {
	return p != nil && p.IsPublished
}
