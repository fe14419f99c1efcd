package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRewardServiceTest(t *testing.T) (*RewardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:reward_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.UserReward{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRewardService(repository.NewRewardRepository(db)), db
}

func TestAccrueFromOrderLevelUp(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)

	if err := svc.AccrueFromOrder(1, moneyFromInt(600)); err != nil {
		t.Fatalf("AccrueFromOrder error: %v", err)
	}
	account, err := svc.GetAccount(1)
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if account.Points != 600 || account.TotalEarned != 600 {
		t.Fatalf("expected 600 points, got %+v", account)
	}
	if account.Level != constants.RewardLevelBronze {
		t.Fatalf("expected bronze, got %s", account.Level)
	}

	// 累计超过 1000 升级白银
	if err := svc.AccrueFromOrder(1, moneyFromInt(500)); err != nil {
		t.Fatalf("AccrueFromOrder error: %v", err)
	}
	account, err = svc.GetAccount(1)
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if account.TotalEarned != 1100 {
		t.Fatalf("expected total earned 1100, got %d", account.TotalEarned)
	}
	if account.Level != constants.RewardLevelSilver {
		t.Fatalf("expected silver, got %s", account.Level)
	}
}

func TestAccrueFromOrderIgnoresZeroTotal(t *testing.T) {
	svc, db := setupRewardServiceTest(t)

	if err := svc.AccrueFromOrder(1, moneyFromInt(0)); err != nil {
		t.Fatalf("AccrueFromOrder error: %v", err)
	}
	var count int64
	db.Model(&models.UserReward{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no reward account for zero total, got %d", count)
	}
}

func TestGetAccountDefaultsToBronze(t *testing.T) {
	svc, _ := setupRewardServiceTest(t)
	account, err := svc.GetAccount(42)
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if account.UserID != 42 || account.Points != 0 {
		t.Fatalf("unexpected empty account: %+v", account)
	}
	if account.Level != constants.RewardLevelBronze {
		t.Fatalf("expected bronze, got %s", account.Level)
	}
}

func TestLevelForTotalEarned(t *testing.T) {
	cases := []struct {
		earned int64
		want   string
	}{
		{0, constants.RewardLevelBronze},
		{999, constants.RewardLevelBronze},
		{1000, constants.RewardLevelSilver},
		{4999, constants.RewardLevelSilver},
		{5000, constants.RewardLevelGold},
		{20000, constants.RewardLevelPlatinum},
	}
	for _, tc := range cases {
		if got := levelForTotalEarned(tc.earned); got != tc.want {
			t.Fatalf("earned %d: want %s got %s", tc.earned, tc.want, got)
		}
	}
}
