package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo 工艺展示照片表
type Photo struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	Title     string         `gorm:"not null" json:"title"`                  // 标题
	Filename  string         `gorm:"not null" json:"filename"`               // 存储文件名
	Path      string         `gorm:"not null" json:"path"`                   // 访问路径
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // 是否展示
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`      // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Photo) TableName() string {
	return "photos"
}
