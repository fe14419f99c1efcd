package public

import (
	"strconv"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/repository"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// PreorderCreateRequest 创建定制预订请求
type PreorderCreateRequest struct {
	ProductID    uint   `json:"product_id" binding:"required"`
	VariantID    *uint  `json:"variant_id"`
	Quantity     int    `json:"quantity" binding:"required"`
	Notes        string `json:"notes"`
	ContactEmail string `json:"contact_email"`
}

// CreatePreorder 创建定制预订单
func (h *Handler) CreatePreorder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req PreorderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	preorder, err := h.PreorderService.CreatePreorder(service.PreorderInput{
		UserID:       uid,
		ProductID:    req.ProductID,
		VariantID:    req.VariantID,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		respondPreorderError(c, err)
		return
	}

	requestLog(c).Infow("preorder_created",
		"preorder_id", preorder.ID,
		"preorder_no", preorder.PreorderNo,
		"user_id", uid,
		"advance_amount", preorder.AdvanceAmount,
	)
	response.Success(c, gin.H{"preorder": preorder})
}

// ListMyPreorders 获取当前用户预订单列表
func (h *Handler) ListMyPreorders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	preorders, total, err := h.PreorderService.ListUserPreorders(repository.PreorderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load preorders", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"preorders": preorders}, buildPagination(page, pageSize, total))
}

// GetMyPreorder 获取当前用户预订单详情
func (h *Handler) GetMyPreorder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	preorderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || preorderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	preorder, svcErr := h.PreorderService.GetPreorder(uint(preorderID), uid)
	if svcErr != nil {
		respondPreorderError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"preorder": preorder})
}

// CancelMyPreorder 取消预订单
// 仅 pending/confirmed 状态可取消。
func (h *Handler) CancelMyPreorder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	preorderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || preorderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	preorder, svcErr := h.PreorderService.CancelPreorder(uint(preorderID), uid)
	if svcErr != nil {
		respondPreorderError(c, svcErr)
		return
	}

	requestLog(c).Infow("preorder_cancelled",
		"preorder_id", preorder.ID,
		"preorder_no", preorder.PreorderNo,
		"user_id", uid,
	)
	response.Success(c, gin.H{"preorder": preorder})
}
