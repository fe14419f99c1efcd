package service

import (
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"
)

// RewardService 积分服务
// 每消费 1 卢比积 1 分，按累计积分划分会员等级
type RewardService struct {
	rewardRepo repository.RewardRepository
}

// NewRewardService 创建积分服务实例
func NewRewardService(rewardRepo repository.RewardRepository) *RewardService {
	return &RewardService{rewardRepo: rewardRepo}
}

// AccrueFromOrder 按订单实付金额累计积分并刷新等级
func (s *RewardService) AccrueFromOrder(userID uint, total models.Money) error {
	points := total.Decimal.IntPart()
	if points <= 0 {
		return nil
	}
	if err := s.rewardRepo.AddPoints(userID, points); err != nil {
		return err
	}

	account, err := s.rewardRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}
	level := levelForTotalEarned(account.TotalEarned)
	if level != account.Level {
		return s.rewardRepo.UpdateLevel(userID, level)
	}
	return nil
}

// GetAccount 查询积分账户（从未消费的用户返回空账户）
func (s *RewardService) GetAccount(userID uint) (*models.UserReward, error) {
	account, err := s.rewardRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &models.UserReward{
			UserID: userID,
			Level:  constants.RewardLevelBronze,
		}, nil
	}
	return account, nil
}

func levelForTotalEarned(totalEarned int64) string {
	switch {
	case totalEarned >= constants.RewardLevelPlatinumThreshold:
		return constants.RewardLevelPlatinum
	case totalEarned >= constants.RewardLevelGoldThreshold:
		return constants.RewardLevelGold
	case totalEarned >= constants.RewardLevelSilverThreshold:
		return constants.RewardLevelSilver
	default:
		return constants.RewardLevelBronze
	}
}
