package repository

import (
	"errors"

	"github.com/brasscraft-shop/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 用户地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.UserAddress, error)
	GetByIDAndUser(id, userID uint) (*models.UserAddress, error)
	Create(address *models.UserAddress) error
	Update(address *models.UserAddress) error
	DeleteByIDAndUser(id, userID uint) (int64, error)
	ClearDefault(userID uint) error
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListByUser 获取用户地址簿
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.UserAddress, error) {
	var addresses []models.UserAddress
	if err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id DESC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetByIDAndUser 获取用户某条地址
func (r *GormAddressRepository) GetByIDAndUser(id, userID uint) (*models.UserAddress, error) {
	var address models.UserAddress
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.UserAddress) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormAddressRepository) Update(address *models.UserAddress) error {
	return r.db.Save(address).Error
}

// DeleteByIDAndUser 删除地址，返回受影响行数
func (r *GormAddressRepository) DeleteByIDAndUser(id, userID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserAddress{})
	return result.RowsAffected, result.Error
}

// ClearDefault 取消用户当前默认地址
func (r *GormAddressRepository) ClearDefault(userID uint) error {
	return r.db.Model(&models.UserAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
