package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/repository"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// PhotoRequest 相册照片请求
type PhotoRequest struct {
	Title     string `json:"title" binding:"required"`
	Filename  string `json:"filename"`
	Path      string `json:"path" binding:"required"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

func (r PhotoRequest) toInput() service.PhotoInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return service.PhotoInput{
		Title:     r.Title,
		Filename:  r.Filename,
		Path:      r.Path,
		IsActive:  isActive,
		SortOrder: r.SortOrder,
	}
}

// ListAdminPhotos 获取相册列表（含停用）
func (h *Handler) ListAdminPhotos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	photos, total, err := h.PhotoService.ListPhotos(repository.PhotoListFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load photos", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, gin.H{"photos": photos}, pagination)
}

// CreatePhoto 新增照片
func (h *Handler) CreatePhoto(c *gin.Context) {
	var req PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	photo, err := h.PhotoService.CreatePhoto(req.toInput())
	if err != nil {
		respondPhotoError(c, err)
		return
	}

	response.Success(c, gin.H{"photo": photo})
}

// UpdatePhoto 更新照片
func (h *Handler) UpdatePhoto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	photo, svcErr := h.PhotoService.UpdatePhoto(uint(id), req.toInput())
	if svcErr != nil {
		respondPhotoError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"photo": photo})
}

// DeletePhoto 删除照片
func (h *Handler) DeletePhoto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.PhotoService.DeletePhoto(uint(id)); err != nil {
		respondPhotoError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondPhotoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPhotoNotFound):
		respondError(c, response.CodeNotFound, "Photo not found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save photo", err)
	}
}
