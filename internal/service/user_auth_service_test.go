package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.PasswordReset{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.JWTConfig{
		SecretKey:             "test-user-secret",
		ExpireHours:           24,
		RememberMeExpireHours: 168,
	}
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireNumber: true}
	svc := NewUserAuthService(
		cfg,
		policy,
		repository.NewUserRepository(db),
		repository.NewPasswordResetRepository(db),
		nil,
	)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register("  Asha@Example.com ", "Craftwork9", "Asha Verma")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("expected valid token, got %q exp %v", token, expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	logged, _, _, err := svc.Login("asha@example.com", "Craftwork9", false)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("asha@example.com", "Craftwork9", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	_, _, _, err := svc.Register("ASHA@example.com", "Craftwork9", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	for _, password := range []string{"short1A", "noupper99", "NoNumberHere"} {
		_, _, _, err := svc.Register("weak@example.com", password, "")
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", password, err)
		}
	}
}

func TestRegisterInvalidEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	_, _, _, err := svc.Register("not-an-email", "Craftwork9", "")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestLoginWrongPasswordAndDisabled(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("asha@example.com", "Craftwork9", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, _, _, err := svc.Login("asha@example.com", "WrongPass1", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost@example.com", "Craftwork9", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("asha@example.com", "Craftwork9", false); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("asha@example.com", "Craftwork9", ""); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	// 未注册邮箱同样静默成功
	if err := svc.ForgotPassword("ghost@example.com"); err != nil {
		t.Fatalf("ForgotPassword unknown email error: %v", err)
	}
	if err := svc.ForgotPassword("asha@example.com"); err != nil {
		t.Fatalf("ForgotPassword error: %v", err)
	}

	var reset models.PasswordReset
	if err := db.First(&reset).Error; err != nil {
		t.Fatalf("load reset token failed: %v", err)
	}

	if err := svc.ResetPassword(reset.Token, "Newcraft42"); err != nil {
		t.Fatalf("ResetPassword error: %v", err)
	}
	if _, _, _, err := svc.Login("asha@example.com", "Newcraft42", false); err != nil {
		t.Fatalf("login with new password error: %v", err)
	}
	if _, _, _, err := svc.Login("asha@example.com", "Craftwork9", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}

	// 令牌仅可使用一次
	if err := svc.ResetPassword(reset.Token, "Another99A"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("asha@example.com", "Craftwork9", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := db.Create(&reset).Error; err != nil {
		t.Fatalf("create reset failed: %v", err)
	}

	if err := svc.ResetPassword("expired-token", "Newcraft42"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("asha@example.com", "Craftwork9", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "WrongPass1", "Newcraft42"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Craftwork9", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Craftwork9", "Newcraft42"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}
	if _, _, _, err := svc.Login("asha@example.com", "Newcraft42", false); err != nil {
		t.Fatalf("login with new password error: %v", err)
	}
}

func TestUpdateProfileKeepsEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("asha@example.com", "Craftwork9", "Asha")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	updated, err := svc.UpdateProfile(user.ID, "  Asha Verma  ", " 9876543210 ")
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Name != "Asha Verma" || updated.Phone != "9876543210" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if updated.Email != "asha@example.com" {
		t.Fatalf("email must not change, got %s", updated.Email)
	}
}

func TestValidatePasswordDefaults(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "longenough"); err != nil {
		t.Fatalf("expected default policy to accept, got %v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected default min length 8 rejection, got %v", err)
	}
}
