package repository

import (
	"errors"

	"github.com/brasscraft-shop/internal/models"

	"gorm.io/gorm"
)

// PhotoRepository 照片数据访问接口
type PhotoRepository interface {
	List(filter PhotoListFilter) ([]models.Photo, int64, error)
	GetByID(id uint) (*models.Photo, error)
	Create(photo *models.Photo) error
	Update(photo *models.Photo) error
	Delete(id uint) error
}

// GormPhotoRepository GORM 实现
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository 创建照片仓库
func NewPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// List 获取照片列表
func (r *GormPhotoRepository) List(filter PhotoListFilter) ([]models.Photo, int64, error) {
	query := r.db.Model(&models.Photo{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var photos []models.Photo
	if err := query.Order("sort_order DESC, id DESC").Find(&photos).Error; err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

// GetByID 根据 ID 获取照片
func (r *GormPhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

// Create 创建照片
func (r *GormPhotoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// Update 更新照片
func (r *GormPhotoRepository) Update(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

// Delete 删除照片
func (r *GormPhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photo{}, id).Error
}
