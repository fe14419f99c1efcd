package admin

import (
	"errors"
	"strconv"

	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.CategoryInput{
		Name:      r.Name,
		IsActive:  isActive,
		SortOrder: r.SortOrder,
	}
}

// ListAdminCategories 获取分类列表（含停用）
func (h *Handler) ListAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories(false)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load categories", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	category, err := h.CategoryService.CreateCategory(req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, gin.H{"category": category})
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	category, svcErr := h.CategoryService.UpdateCategory(uint(id), req.toInput())
	if svcErr != nil {
		respondCategoryError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"category": category})
}

// DeleteCategory 删除分类（分类下有商品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.CategoryService.DeleteCategory(uint(id)); err != nil {
		respondCategoryError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "Category not found", nil)
	case errors.Is(err, service.ErrCategoryNameTaken):
		respondError(c, response.CodeBadRequest, "Category with this name already exists", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeBadRequest, "Cannot delete category with products", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save category", err)
	}
}
