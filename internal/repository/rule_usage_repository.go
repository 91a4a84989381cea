package repository

import (
	"github.com/kitlane/internal/models"

	"gorm.io/gorm"
)

// RuleUsageRepository 折扣规则使用记录数据访问接口
type RuleUsageRepository interface {
	Create(usage *models.RuleUsage) error
	CountByRule(ruleID uint) (int64, error)
	ListByOrder(orderID uint) ([]models.RuleUsage, error)
	DeleteByOrder(orderID uint) error
	WithTx(tx *gorm.DB) *GormRuleUsageRepository
}

// GormRuleUsageRepository GORM 实现
type GormRuleUsageRepository struct {
	db *gorm.DB
}

// NewRuleUsageRepository 创建使用记录仓库
func NewRuleUsageRepository(db *gorm.DB) *GormRuleUsageRepository {
	return &GormRuleUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRuleUsageRepository) WithTx(tx *gorm.DB) *GormRuleUsageRepository {
	if tx == nil {
		return r
	}
	return &GormRuleUsageRepository{db: tx}
}

// Create 写入使用记录
func (r *GormRuleUsageRepository) Create(usage *models.RuleUsage) error {
	return r.db.Create(usage).Error
}

// CountByRule 统计规则使用记录数
func (r *GormRuleUsageRepository) CountByRule(ruleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.RuleUsage{}).Where("rule_id = ?", ruleID).Count(&count).Error
	return count, err
}

// ListByOrder 获取订单关联的使用记录
func (r *GormRuleUsageRepository) ListByOrder(orderID uint) ([]models.RuleUsage, error) {
	var usages []models.RuleUsage
	if err := r.db.Where("order_id = ?", orderID).Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// DeleteByOrder 删除订单关联的使用记录（订单取消时）
func (r *GormRuleUsageRepository) DeleteByOrder(orderID uint) error {
	return r.db.Where("order_id = ?", orderID).Delete(&models.RuleUsage{}).Error
}
