package repository

import (
	"errors"
	"time"

	"github.com/brasscraft-shop/internal/models"

	"gorm.io/gorm"
)

// PasswordResetRepository 密码重置令牌数据访问接口
type PasswordResetRepository interface {
	Create(reset *models.PasswordReset) error
	GetValidByToken(token string) (*models.PasswordReset, error)
	MarkUsed(id uint) error
	DeleteExpired() error
}

// GormPasswordResetRepository GORM 实现
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository 创建密码重置令牌仓库
func NewPasswordResetRepository(db *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// Create 创建重置令牌
func (r *GormPasswordResetRepository) Create(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

// GetValidByToken 获取未过期且未使用的令牌
func (r *GormPasswordResetRepository) GetValidByToken(token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

// MarkUsed 标记令牌已使用
func (r *GormPasswordResetRepository) MarkUsed(id uint) error {
	now := time.Now()
	return r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("used_at", &now).Error
}

// DeleteExpired 清理过期令牌
func (r *GormPasswordResetRepository) DeleteExpired() error {
	return r.db.Where("expires_at <= ?", time.Now()).Delete(&models.PasswordReset{}).Error
}
