package service

import "errors"

// 业务错误定义（错误文案直接作为接口响应的 error 字段返回）
var (
	// 通用
	ErrInvalidInput = errors.New("invalid request")

	// 商品与分类
	ErrProductNotFound     = errors.New("Product not found")
	ErrProductNotAvailable = errors.New("Product is not available")
	ErrVariantNotFound     = errors.New("Variant not found")
	ErrCategoryNotFound    = errors.New("Category not found")
	ErrCategoryNameTaken   = errors.New("Category with this name already exists")
	ErrCategoryInUse       = errors.New("Cannot delete category with products")

	// 购物车与心愿单
	ErrCartEmpty            = errors.New("Cart is empty")
	ErrCartItemNotFound     = errors.New("Cart item not found")
	ErrWishlistItemNotFound = errors.New("Wishlist item not found")

	// 优惠券
	ErrCouponNotFound      = errors.New("Invalid coupon code")
	ErrCouponAlreadyUsed   = errors.New("Coupon already used")
	ErrCouponUsageLimit    = errors.New("Coupon usage limit reached")
	ErrCouponMinimumNotMet = errors.New("Order amount does not meet coupon minimum")
	ErrCouponCodeTaken     = errors.New("Coupon with this code already exists")

	// 结算与订单
	ErrInvalidAddress        = errors.New("Invalid address")
	ErrOrderNotFound         = errors.New("Order not found")
	ErrOrderStatusInvalid    = errors.New("Invalid order status")
	ErrOrderCancelNotAllowed = errors.New("Order cannot be cancelled")
	ErrInvoiceRenderFailed   = errors.New("Failed to generate invoice")

	// 预订单
	ErrPreorderNotFound         = errors.New("Preorder not found")
	ErrPreorderStatusInvalid    = errors.New("Invalid preorder status")
	ErrPreorderCancelNotAllowed = errors.New("Preorder cannot be cancelled")
	ErrPreorderNotSupported     = errors.New("Product does not accept preorders")

	// 地址
	ErrAddressNotFound = errors.New("Address not found")

	// 相册
	ErrPhotoNotFound = errors.New("Photo not found")

	// 账号与认证
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserDisabled       = errors.New("Account is disabled")
	ErrUserNotFound       = errors.New("User not found")
	ErrResetTokenInvalid  = errors.New("Invalid or expired reset token")
	ErrWeakPassword       = errors.New("Password does not meet the security policy")

	// 验证码
	ErrCaptchaRequired = errors.New("Captcha is required")
	ErrCaptchaInvalid  = errors.New("Captcha verification failed")

	// 邮件
	ErrEmailServiceDisabled      = errors.New("Email service is disabled")
	ErrEmailServiceNotConfigured = errors.New("Email service is not configured")
	ErrInvalidEmail              = errors.New("Invalid email address")
	ErrEmailRecipientRejected    = errors.New("Recipient address rejected")
)
