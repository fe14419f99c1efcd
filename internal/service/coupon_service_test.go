package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	couponRepo := repository.NewCouponRepository(db)
	usageRepo := repository.NewCouponUsageRepository(db)
	return NewCouponService(couponRepo, usageRepo), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	t.Helper()
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return &coupon
}

func moneyFromInt(value int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(value))
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  save500 "); got != "SAVE500" {
		t.Fatalf("expected SAVE500, got %s", got)
	}
	if got := NormalizeCode(""); got != "" {
		t.Fatalf("expected empty code, got %s", got)
	}
}

func TestValidateCouponLowercaseCode(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:           "SAVE500",
		Type:           constants.CouponTypeFixed,
		Value:          moneyFromInt(500),
		MinOrderAmount: moneyFromInt(3000),
		PerUserLimit:   1,
		IsActive:       true,
	})

	discount, coupon, err := svc.Validate("save500", 1, moneyFromInt(3500))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if coupon == nil || coupon.Code != "SAVE500" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected discount 500, got %s", discount.Decimal.String())
	}
}

func TestValidateCouponMinimumNotMet(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:           "SAVE500",
		Type:           constants.CouponTypeFixed,
		Value:          moneyFromInt(500),
		MinOrderAmount: moneyFromInt(3000),
		PerUserLimit:   1,
		IsActive:       true,
	})

	_, _, err := svc.Validate("SAVE500", 1, moneyFromInt(1300))
	if !errors.Is(err, ErrCouponMinimumNotMet) {
		t.Fatalf("expected ErrCouponMinimumNotMet, got %v", err)
	}
}

func TestValidateCouponUnknownInactiveExpired(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:     "PAUSED",
		Type:     constants.CouponTypeFixed,
		Value:    moneyFromInt(100),
		IsActive: false,
	})
	expired := time.Now().Add(-time.Hour)
	createTestCoupon(t, db, models.Coupon{
		Code:       "EXPIRED",
		Type:       constants.CouponTypeFixed,
		Value:      moneyFromInt(100),
		ExpiryDate: &expired,
		IsActive:   true,
	})

	for _, code := range []string{"NOSUCH", "PAUSED", "EXPIRED", "  "} {
		_, _, err := svc.Validate(code, 1, moneyFromInt(1000))
		if !errors.Is(err, ErrCouponNotFound) {
			t.Fatalf("code %q: expected ErrCouponNotFound, got %v", code, err)
		}
	}
}

func TestValidateCouponPerUserLimit(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, models.Coupon{
		Code:         "ONCE",
		Type:         constants.CouponTypeFixed,
		Value:        moneyFromInt(100),
		PerUserLimit: 1,
		IsActive:     true,
	})
	usage := models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         7,
		OrderID:        1,
		DiscountAmount: moneyFromInt(100),
	}
	if err := db.Create(&usage).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	_, _, err := svc.Validate("ONCE", 7, moneyFromInt(1000))
	if !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}

	// 其他用户不受影响
	if _, _, err := svc.Validate("ONCE", 8, moneyFromInt(1000)); err != nil {
		t.Fatalf("Validate for other user error: %v", err)
	}
}

func TestValidateCouponUsageLimitExhausted(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:       "LIMITED",
		Type:       constants.CouponTypeFixed,
		Value:      moneyFromInt(100),
		UsageLimit: 2,
		UsedCount:  2,
		IsActive:   true,
	})

	_, _, err := svc.Validate("LIMITED", 1, moneyFromInt(1000))
	if !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected ErrCouponUsageLimit, got %v", err)
	}
}

func TestCalculateDiscountPercentageCapped(t *testing.T) {
	coupon := &models.Coupon{
		Type:        constants.CouponTypePercentage,
		Value:       moneyFromInt(10),
		MaxDiscount: moneyFromInt(1000),
	}
	got := calculateDiscount(coupon, moneyFromInt(15000))
	if !got.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected capped discount 1000, got %s", got.Decimal.String())
	}

	got = calculateDiscount(coupon, moneyFromInt(5000))
	if !got.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected discount 500, got %s", got.Decimal.String())
	}
}

func TestCalculateDiscountNeverExceedsSubtotal(t *testing.T) {
	coupon := &models.Coupon{
		Type:  constants.CouponTypeFixed,
		Value: moneyFromInt(500),
	}
	got := calculateDiscount(coupon, moneyFromInt(300))
	if !got.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected discount clamped to 300, got %s", got.Decimal.String())
	}
}

func TestListActiveCoupons(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	expired := time.Now().Add(-24 * time.Hour)
	upcoming := time.Now().Add(72 * time.Hour)

	createTestCoupon(t, db, models.Coupon{
		Code:     "SAVE500",
		Type:     constants.CouponTypeFixed,
		Value:    moneyFromInt(500),
		IsActive: true,
	})
	createTestCoupon(t, db, models.Coupon{
		Code:       "FESTIVE10",
		Type:       constants.CouponTypePercentage,
		Value:      moneyFromInt(10),
		ExpiryDate: &upcoming,
		IsActive:   true,
	})
	createTestCoupon(t, db, models.Coupon{
		Code:       "OLD20",
		Type:       constants.CouponTypePercentage,
		Value:      moneyFromInt(20),
		ExpiryDate: &expired,
		IsActive:   true,
	})
	createTestCoupon(t, db, models.Coupon{
		Code:     "PAUSED5",
		Type:     constants.CouponTypeFixed,
		Value:    moneyFromInt(5),
		IsActive: false,
	})

	coupons, err := svc.ListActive()
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(coupons) != 2 {
		t.Fatalf("expected 2 visible coupons, got %d", len(coupons))
	}
	for _, coupon := range coupons {
		if coupon.Code == "OLD20" || coupon.Code == "PAUSED5" {
			t.Fatalf("coupon %s should not be listed", coupon.Code)
		}
	}
}
