package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券（Code 统一存储为大写）
type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`                              // 优惠码
	Description    string         `gorm:"type:text" json:"description"`                                  // 描述
	Type           string         `gorm:"not null" json:"discount_type"`                                 // 类型（fixed/percentage）
	Value          Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`             // 数值（固定金额或百分比）
	MinOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"` // 使用门槛
	MaxDiscount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"`     // 最大优惠金额（0 表示不封顶）
	UsageLimit     int            `gorm:"not null;default:0" json:"usage_limit"`                         // 总使用上限（0 表示不限制）
	UsedCount      int            `gorm:"not null;default:0" json:"used_count"`                          // 已使用次数
	PerUserLimit   int            `gorm:"not null;default:1" json:"per_user_limit"`                      // 每人使用上限（0 表示不限制）
	ExpiryDate     *time.Time     `gorm:"index" json:"expiry_date"`                                      // 失效时间
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`                        // 是否启用
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
