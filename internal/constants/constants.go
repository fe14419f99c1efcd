package constants

// 订单状态常量
const (
	OrderStatusProcessing = "processing"
	OrderStatusPending    = "pending"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 预订单状态常量
const (
	PreorderStatusPending      = "pending"
	PreorderStatusConfirmed    = "confirmed"
	PreorderStatusInProduction = "in_production"
	PreorderStatusReady        = "ready"
	PreorderStatusCompleted    = "completed"
	PreorderStatusCancelled    = "cancelled"
)

// 优惠券类型常量
const (
	CouponTypeFixed      = "fixed"
	CouponTypePercentage = "percentage"
)

// 结算模式常量
const (
	CheckoutActionCart   = "cart"
	CheckoutActionBuyNow = "buy_now"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 会员等级常量（按累计积分划分）
const (
	RewardLevelBronze   = "bronze"
	RewardLevelSilver   = "silver"
	RewardLevelGold     = "gold"
	RewardLevelPlatinum = "platinum"
)

// 会员等级积分阈值
const (
	RewardLevelSilverThreshold   = 1000
	RewardLevelGoldThreshold     = 5000
	RewardLevelPlatinumThreshold = 20000
)

// 邮件模板类型常量
const (
	EmailKindOrderPlaced    = "order_placed"
	EmailKindOrderStatus    = "order_status"
	EmailKindPreorderStatus = "preorder_status"
	EmailKindPasswordReset  = "password_reset"
)

// 队列常量
const (
	QueueDefault            = "default"
	TaskOrderPlacedEmail    = "email:order_placed"
	TaskOrderStatusEmail    = "email:order_status"
	TaskPreorderStatusEmail = "email:preorder_status"
	TaskPasswordResetEmail  = "email:password_reset"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "bc"
)

// 币种常量（站点固定单币种）
const (
	SiteCurrency       = "INR"
	SiteCurrencySymbol = "₹"
)

// 发票编号前缀
const (
	InvoiceNoPrefix = "NBMC"
)
