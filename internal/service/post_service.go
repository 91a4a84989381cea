package service

import (
	"strings"
	"time"

	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"
)

// PostService 文章服务
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService 创建文章服务
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// GetBySlug 获取已发布文章
func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if !post.Visible() {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListPublished 获取已发布文章列表
func (s *PostService) ListPublished(filter repository.PostListFilter) ([]models.Post, int64, error) {
	filter.PublishedOnly = true
	return s.postRepo.List(filter)
}

// ListAdmin 后台获取文章列表
func (s *PostService) ListAdmin(filter repository.PostListFilter) ([]models.Post, int64, error) {
	return s.postRepo.List(filter)
}

// PostInput 文章写入参数
type PostInput struct {
	Slug        string      `json:"slug"`
	Type        string      `json:"type"`
	Title       models.JSON `json:"title"`
	Summary     models.JSON `json:"summary"`
	Content     models.JSON `json:"content"`
	Thumbnail   string      `json:"thumbnail"`
	IsPublished *bool       `json:"is_published"`
}

// Create 创建文章
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	post := &models.Post{}
	if err := fillPost(post, input); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update 更新文章
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}
	if err := fillPost(existing, input); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除文章
func (s *PostService) Delete(id uint) error {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPostNotFound
	}
	return s.postRepo.Delete(id)
}

func fillPost(post *models.Post, input PostInput) error {
	slug := strings.TrimSpace(input.Slug)
	postType := strings.ToLower(strings.TrimSpace(input.Type))
	if slug == "" || len(input.Title) == 0 {
		return ErrPostInvalid
	}
	if postType != constants.PostTypeBlog && postType != constants.PostTypeNotice {
		return ErrPostInvalid
	}

	post.Slug = slug
	post.Type = postType
	post.TitleJSON = input.Title
	post.SummaryJSON = input.Summary
	post.ContentJSON = input.Content
	post.Thumbnail = strings.TrimSpace(input.Thumbnail)
	if input.IsPublished != nil {
		wasPublished := post.IsPublished
		post.IsPublished = *input.IsPublished
		if post.IsPublished && !wasPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
	}
	return nil
}
