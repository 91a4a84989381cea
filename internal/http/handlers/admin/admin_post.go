package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kitlane/internal/http/response"
	"github.com/kitlane/internal/repository"
	"github.com/kitlane/internal/service"

	"github.com/gin-gonic/gin"
)

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, response.CodeNotFound, "error.post_not_found", nil)
	case errors.Is(err, service.ErrPostInvalid):
		respondError(c, response.CodeBadRequest, "error.post_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

// GetAdminPosts 后台获取文章列表（含未发布）
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	posts, total, err := h.PostService.ListAdmin(repository.PostListFilter{
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

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req service.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Create(req)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req service.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Update(uint(postID), req)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.PostService.Delete(uint(postID)); err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, gin.H{
		"deleted": true,
	})
}
