package models

import (
	"time"

	"gorm.io/gorm"
)

// Preorder 定制预订单表（黄铜定制工艺品的预订请求）
type Preorder struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                         // 主键
	PreorderNo        string         `gorm:"uniqueIndex;not null" json:"preorder_no"`                      // 预订单编号
	UserID            uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	ProductID         uint           `gorm:"index;not null" json:"product_id"`                             // 商品ID
	VariantID         *uint          `gorm:"index" json:"variant_id,omitempty"`                            // 定制规格ID
	VariantName       string         `gorm:"default:''" json:"variant_name"`                               // 规格名称快照
	Quantity          int            `gorm:"not null" json:"quantity"`                                     // 数量
	UnitPrice         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // 单价（基价×乘数+附加）
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 总金额
	AdvanceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"advance_amount"`  // 预付定金
	Status            string         `gorm:"index;not null" json:"status"`                                 // 预订状态
	Notes             string         `gorm:"type:text" json:"notes"`                                       // 定制说明
	ContactEmail      string         `gorm:"not null" json:"contact_email"`                                // 联系邮箱快照
	EstimatedDelivery *time.Time     `gorm:"index" json:"estimated_delivery"`                              // 预计交付时间
	CancelledAt       *time.Time     `json:"cancelled_at"`                                                 // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Preorder) TableName() string {
	return "preorders"
}
