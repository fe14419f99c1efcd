package repository

import (
	"errors"

	"github.com/brasscraft-shop/internal/models"

	"gorm.io/gorm"
)

// PreorderRepository 预订单数据访问接口
type PreorderRepository interface {
	Create(preorder *models.Preorder) error
	GetByID(id uint) (*models.Preorder, error)
	GetByIDAndUser(id, userID uint) (*models.Preorder, error)
	ListByUser(filter PreorderListFilter) ([]models.Preorder, int64, error)
	ListAdmin(filter PreorderListFilter) ([]models.Preorder, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
}

// GormPreorderRepository GORM 实现
type GormPreorderRepository struct {
	db *gorm.DB
}

// NewPreorderRepository 创建预订单仓库
func NewPreorderRepository(db *gorm.DB) *GormPreorderRepository {
	return &GormPreorderRepository{db: db}
}

// Create 创建预订单
func (r *GormPreorderRepository) Create(preorder *models.Preorder) error {
	return r.db.Create(preorder).Error
}

// GetByID 根据 ID 获取预订单
func (r *GormPreorderRepository) GetByID(id uint) (*models.Preorder, error) {
	var preorder models.Preorder
	if err := r.db.Preload("Product").First(&preorder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &preorder, nil
}

// GetByIDAndUser 获取用户预订单详情
func (r *GormPreorderRepository) GetByIDAndUser(id, userID uint) (*models.Preorder, error) {
	var preorder models.Preorder
	if err := r.db.Preload("Product").Where("id = ? AND user_id = ?", id, userID).First(&preorder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &preorder, nil
}

// ListByUser 获取用户预订单列表
func (r *GormPreorderRepository) ListByUser(filter PreorderListFilter) ([]models.Preorder, int64, error) {
	query := r.db.Model(&models.Preorder{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var preorders []models.Preorder
	if err := query.Preload("Product").Order("id desc").Find(&preorders).Error; err != nil {
		return nil, 0, err
	}
	return preorders, total, nil
}

// ListAdmin 管理端预订单列表
func (r *GormPreorderRepository) ListAdmin(filter PreorderListFilter) ([]models.Preorder, int64, error) {
	query := r.db.Model(&models.Preorder{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var preorders []models.Preorder
	if err := query.Preload("Product").Order("id desc").Find(&preorders).Error; err != nil {
		return nil, 0, err
	}
	return preorders, total, nil
}

// UpdateStatus 更新预订单状态
func (r *GormPreorderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Preorder{}).Where("id = ?", id).Updates(updates).Error
}
