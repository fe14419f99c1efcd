package service

import (
	"strings"
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// CouponService 优惠券校验与折扣计算服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService 创建优惠券服务实例
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// NormalizeCode 规范化优惠码（去除首尾空白并统一大写）
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ListActive 获取当前可领用的优惠券（启用且未过期）
func (s *CouponService) ListActive() ([]models.Coupon, error) {
	active := true
	coupons, _, err := s.couponRepo.List(repository.CouponListFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	visible := make([]models.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		if coupon.ExpiryDate != nil && now.After(*coupon.ExpiryDate) {
			continue
		}
		visible = append(visible, coupon)
	}
	return visible, nil
}

// Validate 校验优惠码并计算折扣金额
// 未知、停用与过期的优惠码统一返回 ErrCouponNotFound，不泄露区别
func (s *CouponService) Validate(code string, userID uint, subtotal models.Money) (models.Money, *models.Coupon, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return models.Money{}, nil, ErrCouponNotFound
	}

	coupon, err := s.couponRepo.GetByCode(normalized)
	if err != nil {
		return models.Money{}, nil, err
	}
	if coupon == nil || !coupon.IsActive {
		return models.Money{}, nil, ErrCouponNotFound
	}
	if coupon.ExpiryDate != nil && time.Now().After(*coupon.ExpiryDate) {
		return models.Money{}, nil, ErrCouponNotFound
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return models.Money{}, nil, ErrCouponUsageLimit
	}

	if coupon.PerUserLimit > 0 {
		used, countErr := s.usageRepo.CountByUser(coupon.ID, userID)
		if countErr != nil {
			return models.Money{}, nil, countErr
		}
		if used >= int64(coupon.PerUserLimit) {
			return models.Money{}, nil, ErrCouponAlreadyUsed
		}
	}

	if coupon.MinOrderAmount.Decimal.IsPositive() && subtotal.Decimal.LessThan(coupon.MinOrderAmount.Decimal) {
		return models.Money{}, nil, ErrCouponMinimumNotMet
	}

	return calculateDiscount(coupon, subtotal), coupon, nil
}

// calculateDiscount 按优惠券类型计算折扣金额
// 折扣不超过订单折前金额，百分比券受 MaxDiscount 封顶
func calculateDiscount(coupon *models.Coupon, subtotal models.Money) models.Money {
	var discount decimal.Decimal
	switch coupon.Type {
	case constants.CouponTypePercentage:
		discount = subtotal.Decimal.Mul(coupon.Value.Decimal).Div(decimalHundred)
	default:
		discount = coupon.Value.Decimal
	}

	if coupon.MaxDiscount.Decimal.IsPositive() && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
		discount = coupon.MaxDiscount.Decimal
	}
	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal.Decimal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount)
}
