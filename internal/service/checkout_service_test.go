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

func setupCheckoutServiceTest(t *testing.T) (*CheckoutService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Order{},
		&models.OrderItem{},
		&models.UserReward{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	usageRepo := repository.NewCouponUsageRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	couponService := NewCouponService(couponRepo, usageRepo)
	rewardService := NewRewardService(repository.NewRewardRepository(db))
	return NewCheckoutService(
		cartRepo, productRepo, couponRepo, usageRepo, orderRepo,
		couponService, rewardService, nil,
	), db
}

func createCheckoutProduct(t *testing.T, db *gorm.DB, name string, price int64, active bool) *models.Product {
	t.Helper()
	category := models.Category{Name: "cat-" + name, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:  category.ID,
		Name:        name,
		PriceAmount: moneyFromInt(price),
		IsActive:    active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func testCheckoutAddress() CheckoutAddress {
	return CheckoutAddress{
		Name:   "Asha Verma",
		Email:  "asha@example.com",
		Phone:  "9876543210",
		Street: "12 Brass Market Road",
		City:   "Moradabad",
		Zip:    "244001",
	}
}

func TestCheckoutFromCartWithCoupon(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	lamp := createCheckoutProduct(t, db, "Hanging Lamp", 2000, true)
	thali := createCheckoutProduct(t, db, "Pooja Thali", 1300, true)
	db.Create(&models.CartItem{UserID: 1, ProductID: lamp.ID, Quantity: 1})
	db.Create(&models.CartItem{UserID: 1, ProductID: thali.ID, Quantity: 1})
	db.Create(&models.Coupon{
		Code:           "SAVE500",
		Type:           constants.CouponTypeFixed,
		Value:          moneyFromInt(500),
		MinOrderAmount: moneyFromInt(3000),
		PerUserLimit:   1,
		IsActive:       true,
	})

	order, err := svc.Checkout(CheckoutInput{
		UserID:     1,
		Action:     constants.CheckoutActionCart,
		CouponCode: "save500",
		Address:    testCheckoutAddress(),
	})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if !order.SubtotalAmount.Decimal.Equal(decimal.NewFromInt(3300)) {
		t.Fatalf("expected subtotal 3300, got %s", order.SubtotalAmount.Decimal.String())
	}
	if !order.DiscountAmount.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected discount 500, got %s", order.DiscountAmount.Decimal.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(2800)) {
		t.Fatalf("expected total 2800, got %s", order.TotalAmount.Decimal.String())
	}
	if order.CouponCode != "SAVE500" {
		t.Fatalf("expected coupon code SAVE500, got %s", order.CouponCode)
	}
	if order.Country != "India" {
		t.Fatalf("expected default country India, got %s", order.Country)
	}

	// 下单后购物车被清空
	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("expected empty cart, got %d items", cartCount)
	}

	// 优惠券使用次数与使用记录
	var coupon models.Coupon
	if err := db.Where("code = ?", "SAVE500").First(&coupon).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if coupon.UsedCount != 1 {
		t.Fatalf("expected used_count 1, got %d", coupon.UsedCount)
	}
	var usageCount int64
	db.Model(&models.CouponUsage{}).Where("coupon_id = ? AND user_id = ?", coupon.ID, 1).Count(&usageCount)
	if usageCount != 1 {
		t.Fatalf("expected 1 usage record, got %d", usageCount)
	}

	// 按实付金额累计积分
	var reward models.UserReward
	if err := db.Where("user_id = ?", 1).First(&reward).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if reward.Points != 2800 {
		t.Fatalf("expected 2800 points, got %d", reward.Points)
	}
}

func TestCheckoutCouponSecondUseRejected(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := createCheckoutProduct(t, db, "Brass Vase", 4000, true)
	db.Create(&models.Coupon{
		Code:         "ONCE",
		Type:         constants.CouponTypeFixed,
		Value:        moneyFromInt(200),
		PerUserLimit: 1,
		IsActive:     true,
	})

	db.Create(&models.CartItem{UserID: 2, ProductID: product.ID, Quantity: 1})
	if _, err := svc.Checkout(CheckoutInput{
		UserID:     2,
		Action:     constants.CheckoutActionCart,
		CouponCode: "ONCE",
		Address:    testCheckoutAddress(),
	}); err != nil {
		t.Fatalf("first checkout error: %v", err)
	}

	db.Create(&models.CartItem{UserID: 2, ProductID: product.ID, Quantity: 1})
	_, err := svc.Checkout(CheckoutInput{
		UserID:     2,
		Action:     constants.CheckoutActionCart,
		CouponCode: "ONCE",
		Address:    testCheckoutAddress(),
	})
	if !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := setupCheckoutServiceTest(t)
	_, err := svc.Checkout(CheckoutInput{
		UserID:  3,
		Action:  constants.CheckoutActionCart,
		Address: testCheckoutAddress(),
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutBuyNowMergesDuplicateProducts(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	bell := createCheckoutProduct(t, db, "Temple Bell", 750, true)

	order, err := svc.Checkout(CheckoutInput{
		UserID:     4,
		Action:     constants.CheckoutActionBuyNow,
		ProductIDs: []uint{bell.ID, bell.ID},
		Address:    testCheckoutAddress(),
	})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		t.Fatalf("load order items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected total 1500, got %s", order.TotalAmount.Decimal.String())
	}
}

func TestCheckoutInactiveProductRejected(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := createCheckoutProduct(t, db, "Retired Idol", 900, false)
	db.Create(&models.CartItem{UserID: 5, ProductID: product.ID, Quantity: 1})

	_, err := svc.Checkout(CheckoutInput{
		UserID:  5,
		Action:  constants.CheckoutActionCart,
		Address: testCheckoutAddress(),
	})
	if !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestCheckoutInvalidAddress(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := createCheckoutProduct(t, db, "Urli Bowl", 2200, true)
	db.Create(&models.CartItem{UserID: 6, ProductID: product.ID, Quantity: 1})

	address := testCheckoutAddress()
	address.Street = "   "
	_, err := svc.Checkout(CheckoutInput{
		UserID:  6,
		Action:  constants.CheckoutActionCart,
		Address: address,
	})
	if !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestCheckoutUnknownAction(t *testing.T) {
	svc, _ := setupCheckoutServiceTest(t)
	_, err := svc.Checkout(CheckoutInput{
		UserID:  7,
		Action:  "subscribe",
		Address: testCheckoutAddress(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApplyCouponDiscountToItemsProportional(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, TotalPrice: moneyFromInt(100)},
		{ProductID: 2, TotalPrice: moneyFromInt(50)},
		{ProductID: 3, TotalPrice: moneyFromInt(50)},
	}
	applyCouponDiscountToItems(items, decimal.NewFromInt(30))

	if !items[0].CouponDiscount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected 15, got %s", items[0].CouponDiscount.Decimal.String())
	}
	if !items[1].CouponDiscount.Decimal.Equal(decimal.RequireFromString("7.5")) {
		t.Fatalf("expected 7.5, got %s", items[1].CouponDiscount.Decimal.String())
	}
	// 末项吸收尾差，分摊总额与折扣一致
	allocated := decimal.Zero
	for _, item := range items {
		allocated = allocated.Add(item.CouponDiscount.Decimal)
	}
	if !allocated.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected allocated 30, got %s", allocated.String())
	}
}

func TestCheckoutRollsBackOnCouponUsageWriteFailure(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	lamp := createCheckoutProduct(t, db, "Hanging Lamp", 2000, true)
	db.Create(&models.CartItem{UserID: 1, ProductID: lamp.ID, Quantity: 1})
	db.Create(&models.Coupon{
		Code:     "SAVE500",
		Type:     constants.CouponTypeFixed,
		Value:    moneyFromInt(500),
		IsActive: true,
	})

	// 使用记录表不可写时，事务内第三步写入失败，前两步必须一并回滚
	if err := db.Migrator().DropTable(&models.CouponUsage{}); err != nil {
		t.Fatalf("drop usage table failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{
		UserID:     1,
		Action:     constants.CheckoutActionCart,
		CouponCode: "SAVE500",
		Address:    testCheckoutAddress(),
	})
	if err == nil {
		t.Fatalf("expected checkout to fail")
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("expected no orders after rollback, got %d", orderCount)
	}
	var itemCount int64
	db.Model(&models.OrderItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("expected no order items after rollback, got %d", itemCount)
	}
	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	if cartCount != 1 {
		t.Fatalf("expected cart to be intact, got %d items", cartCount)
	}
	var coupon models.Coupon
	if err := db.Where("code = ?", "SAVE500").First(&coupon).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if coupon.UsedCount != 0 {
		t.Fatalf("expected used_count unchanged, got %d", coupon.UsedCount)
	}
}

func TestRedeemCouponRechecksPerUserLimitInTransaction(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	coupon := models.Coupon{
		Code:         "SAVE500",
		Type:         constants.CouponTypeFixed,
		Value:        moneyFromInt(500),
		PerUserLimit: 1,
		IsActive:     true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	// 校验之后、核销之前被另一笔结算抢先使用
	db.Create(&models.CouponUsage{CouponID: coupon.ID, UserID: 7, OrderID: 1, DiscountAmount: moneyFromInt(500)})

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		return svc.redeemCoupon(tx, &coupon, 7, 2, moneyFromInt(500))
	})
	if !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}

	// 核销的计数随事务回滚
	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("expected used_count rolled back to 0, got %d", reloaded.UsedCount)
	}

	// 其他用户不受影响
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return svc.redeemCoupon(tx, &coupon, 8, 3, moneyFromInt(500))
	})
	if err != nil {
		t.Fatalf("redeem for another user failed: %v", err)
	}
}
