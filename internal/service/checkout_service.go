package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/queue"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService 结算服务
// 负责从购物车或立即购买入参生成订单，优惠券核销与订单创建在同一事务内完成
type CheckoutService struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	couponRepo    repository.CouponRepository
	usageRepo     repository.CouponUsageRepository
	orderRepo     repository.OrderRepository
	couponService *CouponService
	rewardService *RewardService
	queueClient   *queue.Client
}

// NewCheckoutService 创建结算服务实例
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	usageRepo repository.CouponUsageRepository,
	orderRepo repository.OrderRepository,
	couponService *CouponService,
	rewardService *RewardService,
	queueClient *queue.Client,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		couponRepo:    couponRepo,
		usageRepo:     usageRepo,
		orderRepo:     orderRepo,
		couponService: couponService,
		rewardService: rewardService,
		queueClient:   queueClient,
	}
}

// CheckoutAddress 收货地址入参
type CheckoutAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// CheckoutInput 结算入参
// Action 为 cart 时使用当前购物车内容，为 buy_now 时使用 ProductIDs
type CheckoutInput struct {
	UserID     uint
	Action     string
	ProductIDs []uint
	CouponCode string
	Address    CheckoutAddress
}

// Checkout 执行结算并创建订单
func (s *CheckoutService) Checkout(input CheckoutInput) (*models.Order, error) {
	address, err := normalizeCheckoutAddress(input.Address)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveCheckoutItems(input)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}
	subtotalMoney := models.NewMoneyFromDecimal(subtotal)

	var coupon *models.Coupon
	discount := models.NewMoneyFromDecimal(decimal.Zero)
	if strings.TrimSpace(input.CouponCode) != "" {
		discount, coupon, err = s.couponService.Validate(input.CouponCode, input.UserID, subtotalMoney)
		if err != nil {
			return nil, err
		}
	}

	applyCouponDiscountToItems(items, discount.Decimal)
	total := normalizeOrderAmount(subtotal.Sub(discount.Decimal))

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusProcessing,
		Currency:       constants.SiteCurrency,
		SubtotalAmount: subtotalMoney,
		DiscountAmount: discount,
		TotalAmount:    total,
		RecipientName:  address.Name,
		RecipientEmail: address.Email,
		RecipientPhone: address.Phone,
		Street:         address.Street,
		City:           address.City,
		Zip:            address.Zip,
		Country:        address.Country,
	}
	if coupon != nil {
		couponID := coupon.ID
		order.CouponID = &couponID
		order.CouponCode = coupon.Code
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if txErr := s.orderRepo.WithTx(tx).Create(order, items); txErr != nil {
			return txErr
		}
		if coupon != nil {
			if txErr := s.redeemCoupon(tx, coupon, input.UserID, order.ID, discount); txErr != nil {
				return txErr
			}
		}
		if input.Action == constants.CheckoutActionCart {
			if txErr := s.cartRepo.WithTx(tx).ClearByUser(input.UserID); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 积分与邮件为尽力而为，失败不影响已创建的订单
	if s.rewardService != nil {
		if rewardErr := s.rewardService.AccrueFromOrder(input.UserID, order.TotalAmount); rewardErr != nil {
			logger.Warnw("order_reward_accrue_failed",
				"order_id", order.ID,
				"user_id", input.UserID,
				"error", rewardErr,
			)
		}
	}
	if s.queueClient != nil {
		if enqueueErr := s.queueClient.EnqueueOrderPlacedEmail(queue.OrderPlacedEmailPayload{OrderID: order.ID}); enqueueErr != nil {
			logger.Warnw("order_enqueue_placed_email_failed",
				"order_id", order.ID,
				"error", enqueueErr,
			)
		}
	}

	return order, nil
}

// redeemCoupon 在订单事务内核销优惠券
// 核销 UPDATE 锁定优惠券行后再复查每人限额，同一用户的并发结算只有一个能通过
func (s *CheckoutService) redeemCoupon(tx *gorm.DB, coupon *models.Coupon, userID, orderID uint, discount models.Money) error {
	debited, err := s.couponRepo.WithTx(tx).DebitUsage(coupon.ID)
	if err != nil {
		return err
	}
	if !debited {
		return ErrCouponUsageLimit
	}
	if coupon.PerUserLimit > 0 {
		used, err := s.usageRepo.WithTx(tx).CountByUser(coupon.ID, userID)
		if err != nil {
			return err
		}
		if used >= int64(coupon.PerUserLimit) {
			return ErrCouponAlreadyUsed
		}
	}
	return s.usageRepo.WithTx(tx).Create(&models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discount,
	})
}

// resolveCheckoutItems 解析结算商品行（名称与单价取快照）
func (s *CheckoutService) resolveCheckoutItems(input CheckoutInput) ([]models.OrderItem, error) {
	switch input.Action {
	case constants.CheckoutActionCart:
		return s.itemsFromCart(input.UserID)
	case constants.CheckoutActionBuyNow:
		return s.itemsFromProducts(input.ProductIDs)
	default:
		return nil, fmt.Errorf("%w: unknown checkout action %q", ErrInvalidInput, input.Action)
	}
}

func (s *CheckoutService) itemsFromCart(userID uint) ([]models.OrderItem, error) {
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		if cartItem.Product == nil || !cartItem.Product.IsActive {
			return nil, ErrProductNotAvailable
		}
		items = append(items, buildOrderItem(cartItem.Product, cartItem.Quantity))
	}
	return items, nil
}

func (s *CheckoutService) itemsFromProducts(productIDs []uint) ([]models.OrderItem, error) {
	if len(productIDs) == 0 {
		return nil, ErrCartEmpty
	}
	quantities := make(map[uint]int, len(productIDs))
	ordered := make([]uint, 0, len(productIDs))
	for _, id := range productIDs {
		if id == 0 {
			return nil, fmt.Errorf("%w: invalid product id", ErrInvalidInput)
		}
		if _, seen := quantities[id]; !seen {
			ordered = append(ordered, id)
		}
		quantities[id]++
	}

	products, err := s.productRepo.ListByIDs(ordered)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(ordered))
	for _, id := range ordered {
		product, ok := byID[id]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !product.IsActive {
			return nil, ErrProductNotAvailable
		}
		items = append(items, buildOrderItem(&product, quantities[id]))
	}
	return items, nil
}

func buildOrderItem(product *models.Product, quantity int) models.OrderItem {
	lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
	return models.OrderItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.PriceAmount,
		Quantity:    quantity,
		TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
	}
}

// normalizeCheckoutAddress 校验地址字段非空并应用默认国家
func normalizeCheckoutAddress(address CheckoutAddress) (CheckoutAddress, error) {
	address.Name = strings.TrimSpace(address.Name)
	address.Email = strings.TrimSpace(address.Email)
	address.Phone = strings.TrimSpace(address.Phone)
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.Zip = strings.TrimSpace(address.Zip)
	address.Country = strings.TrimSpace(address.Country)
	if address.Name == "" || address.Email == "" || address.Phone == "" ||
		address.Street == "" || address.City == "" || address.Zip == "" {
		return address, ErrInvalidAddress
	}
	if address.Country == "" {
		address.Country = "India"
	}
	return address, nil
}

// applyCouponDiscountToItems 将折扣按订单项金额比例分摊，末项吸收尾差
func applyCouponDiscountToItems(items []models.OrderItem, discount decimal.Decimal) {
	if len(items) == 0 || !discount.IsPositive() {
		return
	}
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice.Decimal)
	}
	if !subtotal.IsPositive() {
		return
	}

	allocated := decimal.Zero
	for i := range items {
		var share decimal.Decimal
		if i == len(items)-1 {
			share = discount.Sub(allocated)
		} else {
			share = discount.Mul(items[i].TotalPrice.Decimal).Div(subtotal).Round(2)
		}
		if share.IsNegative() {
			share = decimal.Zero
		}
		if share.GreaterThan(items[i].TotalPrice.Decimal) {
			share = items[i].TotalPrice.Decimal
		}
		items[i].CouponDiscount = models.NewMoneyFromDecimal(share)
		allocated = allocated.Add(share)
	}
}

// normalizeOrderAmount 金额下限为 0 并保留两位小数
func normalizeOrderAmount(amount decimal.Decimal) models.Money {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(amount)
}

// generateOrderNo 生成订单编号（NB + 时间戳 + 6 位随机数）
func generateOrderNo() string {
	return "NB" + time.Now().Format("20060102150405") + randNumeric(6)
}

func randNumeric(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits)
}
