package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/queue"
	"github.com/brasscraft-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 密码重置令牌有效期
const passwordResetTTL = time.Hour

// UserAuthService 店铺用户认证服务
type UserAuthService struct {
	cfg         *config.JWTConfig
	policy      config.PasswordPolicyConfig
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	queueClient *queue.Client
}

// NewUserAuthService 创建用户认证服务实例
func NewUserAuthService(
	cfg *config.JWTConfig,
	policy config.PasswordPolicyConfig,
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	queueClient *queue.Client,
) *UserAuthService {
	return &UserAuthService{
		cfg:         cfg,
		policy:      policy,
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		queueClient: queueClient,
	}
}

// UserJWTClaims 用户令牌声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register 注册新用户并返回登录态
func (s *UserAuthService) Register(email, password, name string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.policy, password); err != nil {
		return nil, "", time.Time{}, err
	}

	existing, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if existing != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user := &models.User{
		Email:        normalized,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(user, false)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login 用户登录
func (s *UserAuthService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status == constants.UserStatusDisabled {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// ForgotPassword 发起密码重置
// 为避免邮箱枚举，不存在的邮箱同样返回成功
func (s *UserAuthService) ForgotPassword(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Infow("password_reset_unknown_email", "email", normalized)
		return nil
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return err
	}

	if s.queueClient != nil {
		payload := queue.PasswordResetEmailPayload{
			UserID: user.ID,
			Token:  reset.Token,
		}
		if enqueueErr := s.queueClient.EnqueuePasswordResetEmail(payload); enqueueErr != nil {
			logger.Warnw("password_reset_enqueue_email_failed",
				"user_id", user.ID,
				"error", enqueueErr,
			)
		}
	}
	return nil
}

// ResetPassword 使用重置令牌设置新密码
func (s *UserAuthService) ResetPassword(token, newPassword string) error {
	reset, err := s.resetRepo.GetValidByToken(strings.TrimSpace(token))
	if err != nil {
		return err
	}
	if reset == nil {
		return ErrResetTokenInvalid
	}
	if err := validatePassword(s.policy, newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(reset.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrResetTokenInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.resetRepo.MarkUsed(reset.ID)
}

// ChangePassword 登录态修改密码
func (s *UserAuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if err := validatePassword(s.policy, newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Update(user)
}

// GetProfile 查询用户资料
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新用户资料（邮箱不可变更）
func (s *UserAuthService) UpdateProfile(userID uint, name, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Name = strings.TrimSpace(name)
	user.Phone = strings.TrimSpace(phone)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GenerateJWT 签发用户令牌
func (s *UserAuthService) GenerateJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	expireHours := 24
	if s.cfg != nil {
		if rememberMe && s.cfg.RememberMeExpireHours > 0 {
			expireHours = s.cfg.RememberMeExpireHours
		} else if s.cfg.ExpireHours > 0 {
			expireHours = s.cfg.ExpireHours
		}
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)

	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret()))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT 解析用户令牌
func (s *UserAuthService) ParseJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &UserJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret()), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UserJWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (s *UserAuthService) secret() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.SecretKey) != "" {
		return s.cfg.SecretKey
	}
	return "user-change-me-in-production"
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}
