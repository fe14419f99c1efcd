package admin

import (
	"errors"
	"strconv"

	"github.com/brasscraft-shop/internal/authz"
	"github.com/brasscraft-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load roles", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// GetAuthzRolePolicies 获取角色的权限策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := c.Param("role")
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{"role": role, "policies": policies})
}

// AdminRolesRequest 设置管理员角色请求
type AdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// GetAdminRoles 获取指定管理员的角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	roles, svcErr := h.AuthzService.GetAdminRoles(uint(adminID))
	if svcErr != nil {
		respondAuthzError(c, svcErr)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

// SetAdminRoles 覆盖设置指定管理员的角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "invalid request", nil)
		return
	}

	var req AdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(uint(adminID), req.Roles); err != nil {
		respondAuthzError(c, err)
		return
	}

	requestLog(c).Infow("admin_roles_updated", "admin_id", adminID, "roles", req.Roles)
	response.Success(c, gin.H{"admin_id": adminID, "roles": req.Roles})
}

func respondAuthzError(c *gin.Context, err error) {
	if errors.Is(err, authz.ErrInvalidRole) {
		respondError(c, response.CodeBadRequest, "Invalid role name", nil)
		return
	}
	respondError(c, response.CodeInternal, "Failed to update roles", err)
}
