package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant 商品定制规格表（尺寸/材质等，影响预订价格）
type ProductVariant struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                                           // 主键
	ProductID       uint            `gorm:"not null;index;uniqueIndex:idx_variant_product_name" json:"product_id"`         // 商品ID
	Name            string          `gorm:"not null;uniqueIndex:idx_variant_product_name" json:"name"`                     // 规格名称（如 Large / Antique Finish）
	PriceMultiplier decimal.Decimal `gorm:"type:decimal(10,4);not null;default:1" json:"price_multiplier"`                 // 基价乘数
	AdditionalPrice Money           `gorm:"type:decimal(20,2);not null;default:0" json:"additional_price"`                 // 附加金额
	IsActive        bool            `gorm:"default:true;index" json:"is_active"`                                           // 是否启用
	SortOrder       int             `gorm:"default:0;index" json:"sort_order"`                                             // 排序权重
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                                       // 创建时间
	UpdatedAt       time.Time       `json:"updated_at"`                                                                    // 更新时间
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                                                // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
