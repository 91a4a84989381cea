package service

import (
	"strings"

	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListAll 获取全部分类
func (s *CategoryService) ListAll() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// CategoryInput 分类写入参数
type CategoryInput struct {
	Slug      string      `json:"slug"`
	Name      models.JSON `json:"name"`
	Icon      string      `json:"icon"`
	SortOrder int         `json:"sort_order"`
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || len(input.Name) == 0 {
		return nil, ErrCategoryInvalid
	}
	category := &models.Category{
		Slug:      slug,
		NameJSON:  input.Name,
		Icon:      strings.TrimSpace(input.Icon),
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCategoryNotFound
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || len(input.Name) == 0 {
		return nil, ErrCategoryInvalid
	}
	existing.Slug = slug
	existing.NameJSON = input.Name
	existing.Icon = strings.TrimSpace(input.Icon)
	existing.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除分类
func (s *CategoryService) Delete(id uint) error {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}
