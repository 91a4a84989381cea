package shared

// 商品、订单、文章等列表页共用的分页上限。
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 归一化分页查询参数，越界取默认值。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
