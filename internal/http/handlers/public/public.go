package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/kitlane/internal/cache"
	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/http/response"
	"github.com/kitlane/internal/models"
	"github.com/kitlane/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data := map[string]interface{}{
		"languages": constants.SupportedLocales,
		"currency":  constants.SiteCurrencyDefault,
		"customization": map[string]interface{}{
			"player_name_max_length": constants.PlayerNameMaxLength,
			"player_number_min":      constants.PlayerNumberMin,
			"player_number_max":      constants.PlayerNumberMax,
		},
		"kit_types": []string{
			models.KitTypeHome, models.KitTypeAway, models.KitTypeThird, models.KitTypeGoalkeeper,
		},
	}

	if err := cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		requestLog(c).Warnw("cache public config failed", "error", err)
	}
	response.Success(c, data)
}

// ListCategories 获取分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// ListProducts 获取在售球衣列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	isActive := true

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		CategoryID: uint(categoryID),
		Team:       strings.TrimSpace(c.Query("team")),
		Season:     strings.TrimSpace(c.Query("season")),
		KitType:    strings.TrimSpace(c.Query("kit_type")),
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		IsActive:   &isActive,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 获取球衣详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// ListPosts 获取已发布文章列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	posts, total, err := h.PostService.ListPublished(repository.PostListFilter{
		Type:     strings.TrimSpace(c.Query("type")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, posts, pagination)
}

// GetPost 获取已发布文章详情
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.PostService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, postErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, post)
}
