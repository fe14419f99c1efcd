package public

import (
	"net/http"
	"strconv"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListMyOrders 获取当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListUserOrders(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load orders", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"orders": orders}, buildPagination(page, pageSize, total))
}

// GetMyOrder 获取当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	order, svcErr := h.OrderService.GetOrder(uint(orderID), uid)
	if svcErr != nil {
		respondUserOrderError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"order": order})
}

// CancelMyOrder 取消当前用户订单
// 仅 processing/pending 状态可取消。
func (h *Handler) CancelMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	order, svcErr := h.OrderService.CancelOrder(uint(orderID), uid)
	if svcErr != nil {
		respondUserOrderError(c, svcErr)
		return
	}

	requestLog(c).Infow("order_cancelled",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", uid,
	)
	response.Success(c, gin.H{"order": order})
}

// DownloadMyInvoice 下载订单发票 PDF
func (h *Handler) DownloadMyInvoice(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	pdf, filename, svcErr := h.InvoiceService.RenderOrderInvoice(uint(orderID), uid)
	if svcErr != nil {
		respondUserOrderError(c, svcErr)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
