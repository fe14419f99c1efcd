package admin

import (
	"errors"
	"time"

	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"
	"github.com/brasscraft-shop/internal/http/response"
	"github.com/brasscraft-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptchaPayloadRequest 验证码请求载荷
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Username       string                `json:"username" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if h.CaptchaService != nil && h.CaptchaService.Enabled() {
		captchaID, captchaCode := req.CaptchaPayload.Normalized()
		if captchaErr := h.CaptchaService.Verify(captchaID, captchaCode); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "Captcha is required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "Captcha verification failed", nil)
			default:
				respondError(c, response.CodeInternal, "Captcha verification failed", captchaErr)
			}
			return
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Warnw("admin_login_failed", "username", req.Username, "ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "Invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "Login failed", err)
		return
	}

	requestLog(c).Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// GetCurrentAdmin 获取当前管理员信息
func (h *Handler) GetCurrentAdmin(c *gin.Context) {
	aid, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(aid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load admin", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "Admin not found", nil)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(aid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load admin", err)
		return
	}

	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"is_super":      admin.IsSuper,
		"roles":         roles,
		"last_login_at": admin.LastLoginAt,
	})
}

// UpdatePasswordRequest 管理员改密请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	aid, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	admin, err := h.AdminRepo.GetByID(aid)
	if err != nil || admin == nil {
		respondError(c, response.CodeNotFound, "Admin not found", err)
		return
	}
	if !service.VerifyPassword(admin.PasswordHash, req.OldPassword) {
		respondError(c, response.CodeBadRequest, "Invalid username or password", nil)
		return
	}

	hash, err := service.HashPassword(req.NewPassword)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to change password", err)
		return
	}
	admin.PasswordHash = hash
	if err := h.AdminRepo.Update(admin); err != nil {
		respondError(c, response.CodeInternal, "Failed to change password", err)
		return
	}

	response.Success(c, gin.H{"updated": true})
}
