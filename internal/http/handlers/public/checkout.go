package public

import (
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutAddressRequest 收货信息
type CheckoutAddressRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// CheckoutRequest 结算请求
// action 为 cart 时结算购物车，为 buy_now 时按 product_ids 直接下单。
type CheckoutRequest struct {
	Action     string                 `json:"action"`
	ProductIDs []uint                 `json:"product_ids"`
	CouponCode string                 `json:"coupon_code"`
	Address    CheckoutAddressRequest `json:"address" binding:"required"`
}

// Checkout 结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if req.Action == "" {
		req.Action = constants.CheckoutActionCart
	}

	order, err := h.CheckoutService.Checkout(service.CheckoutInput{
		UserID:     uid,
		Action:     req.Action,
		ProductIDs: req.ProductIDs,
		CouponCode: req.CouponCode,
		Address: service.CheckoutAddress{
			Name:    req.Address.Name,
			Email:   req.Address.Email,
			Phone:   req.Address.Phone,
			Street:  req.Address.Street,
			City:    req.Address.City,
			Zip:     req.Address.Zip,
			Country: req.Address.Country,
		},
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	requestLog(c).Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", uid,
		"total", order.TotalAmount,
	)
	response.Success(c, gin.H{"order": order})
}
