package repository

import "gorm.io/gorm"

// applyPagination 给列表查询加上分页。pageSize 为 0 表示不分页，
// 规则评估等内部全量读取依赖这一行为。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}
