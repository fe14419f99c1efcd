package public

import (
	"errors"
	"strconv"

	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入购物车请求
// product_ids 中重复的商品 ID 会累加数量。
type CartAddRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	summary, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load cart", err)
		return
	}

	response.Success(c, summary)
}

// AddCartItems 批量加入购物车
func (h *Handler) AddCartItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if err := h.CartService.AddItems(uid, req.ProductIDs); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "Product not found", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "Product is not available", nil)
		case errors.Is(err, service.ErrInvalidInput):
			respondError(c, response.CodeBadRequest, "invalid request", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update cart", err)
		}
		return
	}

	summary, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load cart", err)
		return
	}
	response.Success(c, summary)
}

// RemoveCartItem 删除购物车条目
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.CartService.RemoveItem(uid, uint(itemID)); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			respondError(c, response.CodeNotFound, "Cart item not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update cart", err)
		}
		return
	}

	response.Success(c, gin.H{"removed": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "Failed to update cart", err)
		return
	}

	response.Success(c, gin.H{"cleared": true})
}
