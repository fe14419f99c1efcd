package models

import (
	"time"

	"gorm.io/gorm"
)

// UserAddress 用户收货地址表
type UserAddress struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`                 // 用户ID
	Name      string         `gorm:"not null" json:"name"`                          // 收件人姓名
	Phone     string         `gorm:"type:varchar(20);not null" json:"phone"`        // 电话
	Street    string         `gorm:"not null" json:"street"`                        // 街道地址
	City      string         `gorm:"not null" json:"city"`                          // 城市
	State     string         `gorm:"default:''" json:"state"`                       // 邦/省
	Zip       string         `gorm:"type:varchar(16);not null" json:"zip"`          // 邮编
	Country   string         `gorm:"not null;default:'India'" json:"country"`       // 国家
	IsDefault bool           `gorm:"not null;default:false;index" json:"is_default"` // 是否默认地址
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (UserAddress) TableName() string {
	return "user_addresses"
}
