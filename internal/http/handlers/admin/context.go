package admin

import (
	handlershared "github.com/brasscraft-shop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "invalid admin id", "invalid admin id type")
}
