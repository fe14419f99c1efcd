package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset 密码重置令牌表
type PasswordReset struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`    // 用户ID
	Token     string         `gorm:"uniqueIndex;not null" json:"-"`    // 重置令牌
	ExpiresAt time.Time      `gorm:"index;not null" json:"expires_at"` // 过期时间
	UsedAt    *time.Time     `json:"used_at"`                          // 使用时间
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (PasswordReset) TableName() string {
	return "password_resets"
}
