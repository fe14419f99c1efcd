package public

import (
	"github.com/brasscraft-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMyRewards 获取当前用户积分账户
func (h *Handler) GetMyRewards(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	account, err := h.RewardService.GetAccount(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to load rewards", err)
		return
	}

	response.Success(c, gin.H{"rewards": account})
}
