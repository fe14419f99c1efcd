package service

import (
	"fmt"
	"unicode"

	"github.com/brasscraft-shop/internal/config"
)

// passwordPolicyError 密码策略错误，携带具体不满足项
type passwordPolicyError struct {
	message string
}

func (e *passwordPolicyError) Error() string {
	return e.message
}

// Is 支持 errors.Is(err, ErrWeakPassword) 判断
func (e *passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func newPasswordPolicyError(format string, args ...interface{}) error {
	return &passwordPolicyError{message: fmt.Sprintf(format, args...)}
}

// validatePassword 按配置策略校验密码强度
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return newPasswordPolicyError("Password must be at least %d characters", minLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return newPasswordPolicyError("Password must contain an uppercase letter")
	}
	if policy.RequireLower && !hasLower {
		return newPasswordPolicyError("Password must contain a lowercase letter")
	}
	if policy.RequireNumber && !hasNumber {
		return newPasswordPolicyError("Password must contain a number")
	}
	return nil
}
