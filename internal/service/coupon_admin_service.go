package service

import (
	"fmt"
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
)

// CouponAdminService 优惠券后台管理服务
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务实例
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// CouponInput 优惠券创建/更新入参
type CouponInput struct {
	Code           string
	Description    string
	Type           string
	Value          models.Money
	MinOrderAmount models.Money
	MaxDiscount    models.Money
	UsageLimit     int
	PerUserLimit   int
	ExpiryDate     *time.Time
	IsActive       bool
}

// ListCoupons 分页查询优惠券
func (s *CouponAdminService) ListCoupons(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// GetCoupon 查询单个优惠券
func (s *CouponAdminService) GetCoupon(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// CreateCoupon 创建优惠券
func (s *CouponAdminService) CreateCoupon(input CouponInput) (*models.Coupon, error) {
	normalized, err := validateCouponInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.GetByCode(normalized.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	coupon := &models.Coupon{
		Code:           normalized.Code,
		Description:    normalized.Description,
		Type:           normalized.Type,
		Value:          normalized.Value,
		MinOrderAmount: normalized.MinOrderAmount,
		MaxDiscount:    normalized.MaxDiscount,
		UsageLimit:     normalized.UsageLimit,
		PerUserLimit:   normalized.PerUserLimit,
		ExpiryDate:     normalized.ExpiryDate,
		IsActive:       normalized.IsActive,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// UpdateCoupon 更新优惠券（已使用次数不可修改）
func (s *CouponAdminService) UpdateCoupon(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	normalized, err := validateCouponInput(input)
	if err != nil {
		return nil, err
	}

	if normalized.Code != coupon.Code {
		existing, getErr := s.couponRepo.GetByCode(normalized.Code)
		if getErr != nil {
			return nil, getErr
		}
		if existing != nil && existing.ID != coupon.ID {
			return nil, ErrCouponCodeTaken
		}
	}

	coupon.Code = normalized.Code
	coupon.Description = normalized.Description
	coupon.Type = normalized.Type
	coupon.Value = normalized.Value
	coupon.MinOrderAmount = normalized.MinOrderAmount
	coupon.MaxDiscount = normalized.MaxDiscount
	coupon.UsageLimit = normalized.UsageLimit
	coupon.PerUserLimit = normalized.PerUserLimit
	coupon.ExpiryDate = normalized.ExpiryDate
	coupon.IsActive = normalized.IsActive
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// DeleteCoupon 删除优惠券
func (s *CouponAdminService) DeleteCoupon(id uint) error {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.couponRepo.Delete(id)
}

func validateCouponInput(input CouponInput) (CouponInput, error) {
	input.Code = NormalizeCode(input.Code)
	if input.Code == "" {
		return input, fmt.Errorf("%w: coupon code is required", ErrInvalidInput)
	}
	if input.Type != constants.CouponTypeFixed && input.Type != constants.CouponTypePercentage {
		return input, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, input.Type)
	}
	if !input.Value.Decimal.IsPositive() {
		return input, fmt.Errorf("%w: discount value must be positive", ErrInvalidInput)
	}
	if input.Type == constants.CouponTypePercentage && input.Value.Decimal.GreaterThan(decimalHundred) {
		return input, fmt.Errorf("%w: percentage discount cannot exceed 100", ErrInvalidInput)
	}
	if input.MinOrderAmount.Decimal.IsNegative() || input.MaxDiscount.Decimal.IsNegative() {
		return input, fmt.Errorf("%w: amounts cannot be negative", ErrInvalidInput)
	}
	if input.UsageLimit < 0 || input.PerUserLimit < 0 {
		return input, fmt.Errorf("%w: limits cannot be negative", ErrInvalidInput)
	}
	return input, nil
}
