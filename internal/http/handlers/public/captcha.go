package public

import (
	"github.com/pizzaorder-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha 获取图片验证码挑战。
// 未启用时返回 enabled=false，前端据此决定是否展示验证码输入框。
func (h *Handler) GetCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
