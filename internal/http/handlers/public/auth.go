package public

import (
	"errors"

	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/i18n"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Register(req.Email, req.Password, req.DisplayName, req.Locale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInvalid):
			respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeBadRequest, "error.email_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondPasswordPolicyError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       buildUserView(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
			default:
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
			}
			return
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "error.user_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"user":       buildUserView(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetProfile(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, buildUserView(user))
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	user, err := h.AuthService.UpdateProfile(uid, req.DisplayName, req.Locale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, buildUserView(user))
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", err)
		return
	}
	if err := h.AuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondPasswordPolicyError(c, err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

func respondPasswordPolicyError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.password_too_weak", nil)
}

func buildUserView(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"role":         user.Role,
		"locale":       user.Locale,
	}
}
