package repository

import (
	"errors"

	"github.com/brasscraft-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RewardRepository 用户积分数据访问接口
type RewardRepository interface {
	GetByUser(userID uint) (*models.UserReward, error)
	AddPoints(userID uint, points int64) error
	UpdateLevel(userID uint, level string) error
}

// GormRewardRepository GORM 实现
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 创建积分仓库
func NewRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{db: db}
}

// GetByUser 获取用户积分账户
func (r *GormRewardRepository) GetByUser(userID uint) (*models.UserReward, error) {
	var reward models.UserReward
	if err := r.db.Where("user_id = ?", userID).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// AddPoints 累加积分，账户不存在时自动建立。
// 单条 ON CONFLICT 语句保证并发累加不丢更新。
func (r *GormRewardRepository) AddPoints(userID uint, points int64) error {
	if points <= 0 {
		return nil
	}
	reward := models.UserReward{
		UserID:      userID,
		Points:      points,
		TotalEarned: points,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":       gorm.Expr("user_rewards.points + excluded.points"),
			"total_earned": gorm.Expr("user_rewards.total_earned + excluded.total_earned"),
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&reward).Error
}

// UpdateLevel 更新会员等级
func (r *GormRewardRepository) UpdateLevel(userID uint, level string) error {
	return r.db.Model(&models.UserReward{}).Where("user_id = ?", userID).Update("level", level).Error
}
