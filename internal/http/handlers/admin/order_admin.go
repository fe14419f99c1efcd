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

// ListAdminOrders 获取订单列表
func (h *Handler) ListAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load orders", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, pagination)
}

// GetAdminOrder 获取订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	order, svcErr := h.OrderService.GetOrderAdmin(uint(id))
	if svcErr != nil {
		respondOrderAdminError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"order": order})
}

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 更新订单状态
// 仅允许 processing/pending→shipped|cancelled、shipped→delivered。
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	order, svcErr := h.OrderService.UpdateOrderStatus(uint(id), req.Status)
	if svcErr != nil {
		respondOrderAdminError(c, svcErr)
		return
	}

	requestLog(c).Infow("order_status_updated",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
	)
	response.Success(c, gin.H{"order": order})
}

func respondOrderAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "Order not found", nil)
	case errors.Is(err, service.ErrOrderStatusInvalid):
		respondError(c, response.CodeBadRequest, "Invalid order status", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to update order", err)
	}
}
