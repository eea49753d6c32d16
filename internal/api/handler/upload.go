package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elimuhub/homework_go_server/internal/api/middleware"
	"github.com/elimuhub/homework_go_server/internal/pkg/oss"
	"github.com/elimuhub/homework_go_server/internal/pkg/response"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	ossClient *oss.Client
}

func NewUploadHandler(ossClient *oss.Client) *UploadHandler {
	return &UploadHandler{
		ossClient: ossClient,
	}
}

// UploadImage stores a photographed question and returns its URL
// POST /api/v1/upload/image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.ParamError(c, "image file is required")
		return
	}

	if fileHeader.Size > maxImageSize {
		response.ParamError(c, "image exceeds 5MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		response.ParamError(c, "only jpg, png and webp images are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	url, err := h.ossClient.UploadQuestionImage(userID, data, ext)
	if err != nil {
		response.GatewayError(c, "image upload failed")
		return
	}

	response.Success(c, gin.H{"url": url})
}
