package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest 优惠券请求
type CouponRequest struct {
	Code           string       `json:"code" binding:"required"`
	Description    string       `json:"description"`
	DiscountType   string       `json:"discount_type" binding:"required"`
	DiscountValue  models.Money `json:"discount_value" binding:"required"`
	MinOrderAmount models.Money `json:"min_order_amount"`
	MaxDiscount    models.Money `json:"max_discount"`
	UsageLimit     int          `json:"usage_limit"`
	PerUserLimit   *int         `json:"per_user_limit"`
	ExpiryDate     *time.Time   `json:"expiry_date"`
	IsActive       *bool        `json:"is_active"`
}

func (r CouponRequest) toInput() service.CouponInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	perUserLimit := 1
	if r.PerUserLimit != nil {
		perUserLimit = *r.PerUserLimit
	}
	return service.CouponInput{
		Code:           r.Code,
		Description:    r.Description,
		Type:           r.DiscountType,
		Value:          r.DiscountValue,
		MinOrderAmount: r.MinOrderAmount,
		MaxDiscount:    r.MaxDiscount,
		UsageLimit:     r.UsageLimit,
		PerUserLimit:   perUserLimit,
		ExpiryDate:     r.ExpiryDate,
		IsActive:       isActive,
	}
}

// ListAdminCoupons 获取优惠券列表
func (h *Handler) ListAdminCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		isActive := raw == "true"
		filter.IsActive = &isActive
	}

	coupons, total, err := h.CouponAdmin.ListCoupons(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load coupons", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, gin.H{"coupons": coupons}, pagination)
}

// GetAdminCoupon 获取优惠券详情
func (h *Handler) GetAdminCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	coupon, svcErr := h.CouponAdmin.GetCoupon(uint(id))
	if svcErr != nil {
		respondCouponAdminError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"coupon": coupon})
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	coupon, err := h.CouponAdmin.CreateCoupon(req.toInput())
	if err != nil {
		respondCouponAdminError(c, err)
		return
	}

	requestLog(c).Infow("coupon_created", "coupon_id", coupon.ID, "code", coupon.Code)
	response.Success(c, gin.H{"coupon": coupon})
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	coupon, svcErr := h.CouponAdmin.UpdateCoupon(uint(id), req.toInput())
	if svcErr != nil {
		respondCouponAdminError(c, svcErr)
		return
	}

	response.Success(c, gin.H{"coupon": coupon})
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	if err := h.CouponAdmin.DeleteCoupon(uint(id)); err != nil {
		respondCouponAdminError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondCouponAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "Invalid coupon code", nil)
	case errors.Is(err, service.ErrCouponCodeTaken):
		respondError(c, response.CodeBadRequest, "Coupon with this code already exists", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save coupon", err)
	}
}
