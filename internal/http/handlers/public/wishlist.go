package public

import (
	"errors"
	"strconv"

	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistAddRequest 加入心愿单请求
type WishlistAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load wishlist", err)
		return
	}

	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem 加入心愿单（重复加入幂等）
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "Product not found", nil)
		case errors.Is(err, service.ErrProductNotAvailable):
			respondError(c, response.CodeBadRequest, "Product is not available", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update wishlist", err)
		}
		return
	}

	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem 从心愿单移除
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		switch {
		case errors.Is(err, service.ErrWishlistItemNotFound):
			respondError(c, response.CodeNotFound, "Wishlist item not found", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update wishlist", err)
		}
		return
	}

	response.Success(c, gin.H{"removed": true})
}
