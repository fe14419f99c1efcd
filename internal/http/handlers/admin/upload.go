package admin

import (
	"github.com/brasscraft-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件（商品/分类/相册图片）
// scene 取值 product/category/photo/common，决定存储子目录。
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	path, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	requestLog(c).Infow("file_uploaded", "scene", scene, "path", path, "size", file.Size)
	response.Success(c, gin.H{"path": path})
}
