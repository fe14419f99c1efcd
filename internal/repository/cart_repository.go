package repository

import (
	"github.com/brasscraft-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	AddQuantity(userID, productID uint, delta int) error
	DeleteByIDAndUser(itemID, userID uint) (int64, error)
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（关联商品信息）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddQuantity 添加购物车项，(user, product) 已存在时累加数量。
// 通过单条 ON CONFLICT 语句保证并发加购不丢更新。
func (r *GormCartRepository) AddQuantity(userID, productID uint, delta int) error {
	if delta <= 0 {
		delta = 1
	}
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  delta,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&item).Error
}

// DeleteByIDAndUser 删除购物车项，返回受影响行数。
// 购物车行使用硬删除，避免软删除残留行与 (user, product) 唯一索引冲突。
func (r *GormCartRepository) DeleteByIDAndUser(itemID, userID uint) (int64, error) {
	result := r.db.Unscoped().Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
