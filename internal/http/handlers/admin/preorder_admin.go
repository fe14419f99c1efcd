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

// ListAdminPreorders 获取预订单列表
func (h *Handler) ListAdminPreorders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	preorders, total, err := h.PreorderService.ListPreorders(repository.PreorderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load preorders", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, gin.H{"preorders": preorders}, pagination)
}

// PreorderStatusRequest 预订单状态更新请求
type PreorderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePreorderStatus 更新预订单状态
// 状态沿 pending→confirmed→in_production→ready→completed 推进。
func (h *Handler) UpdatePreorderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req PreorderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	preorder, svcErr := h.PreorderService.UpdatePreorderStatus(uint(id), req.Status)
	if svcErr != nil {
		switch {
		case errors.Is(svcErr, service.ErrPreorderNotFound):
			respondError(c, response.CodeNotFound, "Preorder not found", nil)
		case errors.Is(svcErr, service.ErrPreorderStatusInvalid):
			respondError(c, response.CodeBadRequest, "Invalid preorder status", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update preorder", svcErr)
		}
		return
	}

	requestLog(c).Infow("preorder_status_updated",
		"preorder_id", preorder.ID,
		"preorder_no", preorder.PreorderNo,
		"status", preorder.Status,
	)
	response.Success(c, gin.H{"preorder": preorder})
}
