package public

import (
	"strconv"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListPhotos 获取相册照片列表（仅展示启用项）
func (h *Handler) ListPhotos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	photos, total, err := h.PhotoService.ListPhotos(repository.PhotoListFilter{
		Page:       page,
		PageSize:   pageSize,
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load photos", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"photos": photos}, buildPagination(page, pageSize, total))
}
