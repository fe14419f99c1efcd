package models

import (
	"time"
)

// UserReward 用户积分账户表
type UserReward struct {
	ID          uint      `gorm:"primarykey" json:"id"`                           // 主键
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`            // 用户ID
	Points      int64     `gorm:"not null;default:0" json:"points"`               // 当前可用积分
	TotalEarned int64     `gorm:"not null;default:0" json:"total_earned"`         // 累计获得积分
	Level       string    `gorm:"not null;default:'bronze';index" json:"level"`   // 会员等级
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                     // 更新时间
}

// TableName 指定表名
func (UserReward) TableName() string {
	return "user_rewards"
}
