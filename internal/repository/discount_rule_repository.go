package repository

import (
	"errors"
	"time"

	"github.com/kitlane/internal/models"

	"gorm.io/gorm"
)

// DiscountRuleRepository 折扣规则数据访问接口
type DiscountRuleRepository interface {
	GetByID(id uint) (*models.DiscountRule, error)
	ListActive(now time.Time) ([]models.DiscountRule, error)
	List(filter DiscountRuleListFilter) ([]models.DiscountRule, int64, error)
	Create(rule *models.DiscountRule) error
	Update(rule *models.DiscountRule) error
	Delete(id uint) error
	ConsumeUsage(id uint) (bool, error)
	ReleaseUsage(id uint) error
	DeactivateExpired(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormDiscountRuleRepository
}

// DiscountRuleListFilter 折扣规则列表筛选
type DiscountRuleListFilter struct {
	Type     string
	IsActive *bool
	Page     int
	PageSize int
}

// GormDiscountRuleRepository GORM 实现
type GormDiscountRuleRepository struct {
	db *gorm.DB
}

// NewDiscountRuleRepository 创建折扣规则仓库
func NewDiscountRuleRepository(db *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountRuleRepository) WithTx(tx *gorm.DB) *GormDiscountRuleRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRuleRepository{db: tx}
}

// GetByID 根据ID获取折扣规则
func (r *GormDiscountRuleRepository) GetByID(id uint) (*models.DiscountRule, error) {
	var rule models.DiscountRule
	if err := r.db.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// ListActive 获取当前时间点启用且在有效期内的规则，匹配与选择在服务层完成
func (r *GormDiscountRuleRepository) ListActive(now time.Time) ([]models.DiscountRule, error) {
	var rules []models.DiscountRule
	err := r.db.
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("priority desc, id asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// List 获取折扣规则列表
func (r *GormDiscountRuleRepository) List(filter DiscountRuleListFilter) ([]models.DiscountRule, int64, error) {
	var rules []models.DiscountRule
	query := r.db.Model(&models.DiscountRule{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

// Create 创建折扣规则
func (r *GormDiscountRuleRepository) Create(rule *models.DiscountRule) error {
	return r.db.Create(rule).Error
}

// Update 更新折扣规则
func (r *GormDiscountRuleRepository) Update(rule *models.DiscountRule) error {
	return r.db.Save(rule).Error
}

// Delete 删除折扣规则
func (r *GormDiscountRuleRepository) Delete(id uint) error {
	return r.db.Delete(&models.DiscountRule{}, id).Error
}

// ConsumeUsage 条件自增使用次数，上限已满时不更新任何行。
// 单条 UPDATE 携带守卫条件，依赖数据库行级原子性，并发下同一
// 最后名额只会被一个请求拿到；返回 false 表示规则已不可用。
func (r *GormDiscountRuleRepository) ConsumeUsage(id uint) (bool, error) {
	result := r.db.Model(&models.DiscountRule{}).
		Where("id = ?", id).
		Where("max_uses = 0 OR current_uses < max_uses").
		UpdateColumn("current_uses", gorm.Expr("current_uses + ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseUsage 归还一次使用次数（订单取消退款时）
func (r *GormDiscountRuleRepository) ReleaseUsage(id uint) error {
	return r.db.Model(&models.DiscountRule{}).
		Where("id = ?", id).
		Where("current_uses > 0").
		UpdateColumn("current_uses", gorm.Expr("current_uses - ?", 1)).Error
}

// DeactivateExpired 批量停用已过失效时间的规则，返回受影响行数
func (r *GormDiscountRuleRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.DiscountRule{}).
		Where("is_active = ?", true).
		Where("ends_at IS NOT NULL AND ends_at < ?", now).
		UpdateColumn("is_active", false)
	return result.RowsAffected, result.Error
}
