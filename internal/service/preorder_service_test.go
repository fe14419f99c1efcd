package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPreorderServiceTest(t *testing.T) (*PreorderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:preorder_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Preorder{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.PreorderConfig{AdvancePercent: 20, DeliveryEstimDays: 30}
	svc := NewPreorderService(
		cfg,
		repository.NewPreorderRepository(db),
		repository.NewProductRepository(db),
		repository.NewProductVariantRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	return svc, db
}

func createPreorderProduct(t *testing.T, db *gorm.DB, name string, price int64, preorder bool) *models.Product {
	t.Helper()
	category := models.Category{Name: "cat-" + name, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		PriceAmount: moneyFromInt(price),
		IsPreorder:  preorder,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestCreatePreorderVariantPricing(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Ganesha Idol", 1000, true)
	variant := models.ProductVariant{
		ProductID:       product.ID,
		Name:            "Large (12 inch)",
		PriceMultiplier: decimal.RequireFromString("1.5"),
		AdditionalPrice: moneyFromInt(200),
		IsActive:        true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	preorder, err := svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		VariantID:    &variant.ID,
		Quantity:     2,
		ContactEmail: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("CreatePreorder error: %v", err)
	}

	// 单价 = 1000 × 1.5 + 200 = 1700
	if !preorder.UnitPrice.Decimal.Equal(decimal.NewFromInt(1700)) {
		t.Fatalf("expected unit price 1700, got %s", preorder.UnitPrice.Decimal.String())
	}
	if !preorder.TotalAmount.Decimal.Equal(decimal.NewFromInt(3400)) {
		t.Fatalf("expected total 3400, got %s", preorder.TotalAmount.Decimal.String())
	}
	// 定金为总价的 20%
	if !preorder.AdvanceAmount.Decimal.Equal(decimal.NewFromInt(680)) {
		t.Fatalf("expected advance 680, got %s", preorder.AdvanceAmount.Decimal.String())
	}
	if preorder.Status != constants.PreorderStatusPending {
		t.Fatalf("expected pending, got %s", preorder.Status)
	}
	if preorder.VariantName != "Large (12 inch)" {
		t.Fatalf("expected variant name snapshot, got %s", preorder.VariantName)
	}
	if preorder.EstimatedDelivery == nil {
		t.Fatalf("expected estimated delivery to be set")
	}
}

func TestCreatePreorderFallsBackToUserEmail(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Nataraja Statue", 5999, true)
	user := models.User{
		Email:        "artisan@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	preorder, err := svc.CreatePreorder(PreorderInput{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("CreatePreorder error: %v", err)
	}
	if preorder.ContactEmail != "artisan@example.com" {
		t.Fatalf("expected user email fallback, got %s", preorder.ContactEmail)
	}
}

func TestCreatePreorderNotSupported(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Ready Stock Diya", 899, false)

	_, err := svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		Quantity:     1,
		ContactEmail: "asha@example.com",
	})
	if !errors.Is(err, ErrPreorderNotSupported) {
		t.Fatalf("expected ErrPreorderNotSupported, got %v", err)
	}
}

func TestCreatePreorderInvalidQuantityAndVariant(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Hanging Lamp", 3499, true)

	_, err := svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		Quantity:     0,
		ContactEmail: "asha@example.com",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	missing := uint(9999)
	_, err = svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		VariantID:    &missing,
		Quantity:     1,
		ContactEmail: "asha@example.com",
	})
	if !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestPreorderStatusLifecycle(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Custom Urli", 2199, true)
	preorder, err := svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		Quantity:     1,
		ContactEmail: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("CreatePreorder error: %v", err)
	}

	for _, target := range []string{
		constants.PreorderStatusConfirmed,
		constants.PreorderStatusInProduction,
		constants.PreorderStatusReady,
		constants.PreorderStatusCompleted,
	} {
		if preorder, err = svc.UpdatePreorderStatus(preorder.ID, target); err != nil {
			t.Fatalf("UpdatePreorderStatus to %s error: %v", target, err)
		}
		if preorder.Status != target {
			t.Fatalf("expected status %s, got %s", target, preorder.Status)
		}
	}

	// 终态不可再变更
	if _, err := svc.UpdatePreorderStatus(preorder.ID, constants.PreorderStatusCancelled); !errors.Is(err, ErrPreorderStatusInvalid) {
		t.Fatalf("expected ErrPreorderStatusInvalid, got %v", err)
	}
}

func TestCancelPreorderAfterProductionRejected(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Custom Bell", 749, true)
	preorder, err := svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		Quantity:     1,
		ContactEmail: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("CreatePreorder error: %v", err)
	}
	if _, err := svc.UpdatePreorderStatus(preorder.ID, constants.PreorderStatusConfirmed); err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if _, err := svc.UpdatePreorderStatus(preorder.ID, constants.PreorderStatusInProduction); err != nil {
		t.Fatalf("in_production error: %v", err)
	}

	if _, err := svc.CancelPreorder(preorder.ID, 1); !errors.Is(err, ErrPreorderCancelNotAllowed) {
		t.Fatalf("expected ErrPreorderCancelNotAllowed, got %v", err)
	}
}

func TestCancelPreorderPending(t *testing.T) {
	svc, db := setupPreorderServiceTest(t)
	product := createPreorderProduct(t, db, "Custom Vase", 1799, true)
	preorder, err := svc.CreatePreorder(PreorderInput{
		UserID:       1,
		ProductID:    product.ID,
		Quantity:     1,
		ContactEmail: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("CreatePreorder error: %v", err)
	}

	cancelled, err := svc.CancelPreorder(preorder.ID, 1)
	if err != nil {
		t.Fatalf("CancelPreorder error: %v", err)
	}
	if cancelled.Status != constants.PreorderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at to be set")
	}

	// 其他用户不可取消
	if _, err := svc.CancelPreorder(preorder.ID, 2); !errors.Is(err, ErrPreorderNotFound) {
		t.Fatalf("expected ErrPreorderNotFound for other user, got %v", err)
	}
}
