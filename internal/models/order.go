package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（收货信息为下单时快照，不随用户资料变更）
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // 订单编号
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status         string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	Currency       string         `gorm:"not null" json:"currency"`                                      // 币种
	SubtotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"`  // 折前金额
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // 优惠金额
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 实付金额
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // 优惠券ID
	CouponCode     string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`                 // 优惠码快照
	RecipientName  string         `gorm:"not null" json:"recipient_name"`                                // 收件人姓名快照
	RecipientEmail string         `gorm:"index;not null" json:"recipient_email"`                         // 收件人邮箱快照
	RecipientPhone string         `gorm:"type:varchar(20);not null" json:"recipient_phone"`              // 电话快照
	Street         string         `gorm:"not null" json:"street"`                                        // 街道快照
	City           string         `gorm:"not null" json:"city"`                                          // 城市快照
	Zip            string         `gorm:"type:varchar(16);not null" json:"zip"`                          // 邮编快照
	Country        string         `gorm:"not null;default:'India'" json:"country"`                       // 国家快照
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`                                     // 取消时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 下单时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
