package public

import (
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ListActiveCoupons 获取当前可用的优惠券列表
func (h *Handler) ListActiveCoupons(c *gin.Context) {
	coupons, err := h.CouponService.ListActive()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load coupons", err)
		return
	}
	response.Success(c, gin.H{"coupons": coupons})
}

// CouponApplyRequest 试算优惠券请求
type CouponApplyRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon 按当前购物车金额试算优惠券
// 只做校验与试算，不占用优惠券使用次数。
func (h *Handler) ApplyCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CouponApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	summary, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load cart", err)
		return
	}
	if len(summary.Items) == 0 {
		respondWithMappedError(c, service.ErrCartEmpty, checkoutExtraErrorRules, response.CodeInternal, "Failed to apply coupon")
		return
	}

	discount, coupon, err := h.CouponService.Validate(req.Code, uid, summary.Subtotal)
	if err != nil {
		respondCouponValidateError(c, err)
		return
	}

	total := models.NewMoneyFromDecimal(summary.Subtotal.Decimal.Sub(discount.Decimal))
	response.Success(c, gin.H{
		"coupon": gin.H{
			"code":           coupon.Code,
			"discount_type":  coupon.Type,
			"discount_value": coupon.Value,
			"description":    coupon.Description,
		},
		"subtotal": summary.Subtotal,
		"discount": discount,
		"total":    total,
	})
}
