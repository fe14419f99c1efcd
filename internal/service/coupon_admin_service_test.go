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
	"gorm.io/gorm"
)

func setupCouponAdminServiceTest(t *testing.T) (*CouponAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponAdminService(repository.NewCouponRepository(db)), db
}

func TestCreateCouponNormalizesCode(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	coupon, err := svc.CreateCoupon(CouponInput{
		Code:           " save500 ",
		Type:           constants.CouponTypeFixed,
		Value:          moneyFromInt(500),
		MinOrderAmount: moneyFromInt(3000),
		PerUserLimit:   1,
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("CreateCoupon error: %v", err)
	}
	if coupon.Code != "SAVE500" {
		t.Fatalf("expected SAVE500, got %s", coupon.Code)
	}
}

func TestCreateCouponCodeTaken(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	input := CouponInput{
		Code:     "SAVE500",
		Type:     constants.CouponTypeFixed,
		Value:    moneyFromInt(500),
		IsActive: true,
	}
	if _, err := svc.CreateCoupon(input); err != nil {
		t.Fatalf("CreateCoupon error: %v", err)
	}
	input.Code = "save500"
	if _, err := svc.CreateCoupon(input); !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("expected ErrCouponCodeTaken, got %v", err)
	}
}

func TestCreateCouponValidation(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	cases := []CouponInput{
		{Code: "", Type: constants.CouponTypeFixed, Value: moneyFromInt(10)},
		{Code: "BAD", Type: "bogo", Value: moneyFromInt(10)},
		{Code: "BAD", Type: constants.CouponTypeFixed, Value: moneyFromInt(0)},
		{Code: "BAD", Type: constants.CouponTypePercentage, Value: moneyFromInt(150)},
		{Code: "BAD", Type: constants.CouponTypeFixed, Value: moneyFromInt(10), UsageLimit: -1},
	}
	for i, input := range cases {
		if _, err := svc.CreateCoupon(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdateCouponPreservesUsedCount(t *testing.T) {
	svc, db := setupCouponAdminServiceTest(t)

	created, err := svc.CreateCoupon(CouponInput{
		Code:     "FESTIVE10",
		Type:     constants.CouponTypePercentage,
		Value:    moneyFromInt(10),
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCoupon error: %v", err)
	}
	if err := db.Model(&models.Coupon{}).Where("id = ?", created.ID).
		Update("used_count", 5).Error; err != nil {
		t.Fatalf("seed used_count failed: %v", err)
	}

	updated, err := svc.UpdateCoupon(created.ID, CouponInput{
		Code:        "FESTIVE10",
		Type:        constants.CouponTypePercentage,
		Value:       moneyFromInt(15),
		MaxDiscount: moneyFromInt(1000),
		IsActive:    false,
	})
	if err != nil {
		t.Fatalf("UpdateCoupon error: %v", err)
	}
	if updated.UsedCount != 5 {
		t.Fatalf("expected used_count preserved, got %d", updated.UsedCount)
	}
	if updated.IsActive {
		t.Fatalf("expected coupon deactivated")
	}
}

func TestUpdateCouponCodeCollision(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	if _, err := svc.CreateCoupon(CouponInput{
		Code: "FIRST", Type: constants.CouponTypeFixed, Value: moneyFromInt(100), IsActive: true,
	}); err != nil {
		t.Fatalf("CreateCoupon error: %v", err)
	}
	second, err := svc.CreateCoupon(CouponInput{
		Code: "SECOND", Type: constants.CouponTypeFixed, Value: moneyFromInt(100), IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCoupon error: %v", err)
	}

	_, err = svc.UpdateCoupon(second.ID, CouponInput{
		Code: "FIRST", Type: constants.CouponTypeFixed, Value: moneyFromInt(100), IsActive: true,
	})
	if !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("expected ErrCouponCodeTaken, got %v", err)
	}
}

func TestDeleteCoupon(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	created, err := svc.CreateCoupon(CouponInput{
		Code: "GONE", Type: constants.CouponTypeFixed, Value: moneyFromInt(100), IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateCoupon error: %v", err)
	}
	if err := svc.DeleteCoupon(created.ID); err != nil {
		t.Fatalf("DeleteCoupon error: %v", err)
	}
	if _, err := svc.GetCoupon(created.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound after delete, got %v", err)
	}
	if err := svc.DeleteCoupon(created.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound for missing coupon, got %v", err)
	}
}
