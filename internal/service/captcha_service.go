package service

import (
	"strings"
	"sync"
	"time"

	"github.com/pizzaorder-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaChallenge 图片验证码挑战
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务。
// 仅在登录场景启用，配置关闭时 Verify 直接放行。
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled 判断登录是否要求验证码
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateChallenge 生成图片验证码
func (s *CaptchaService) GenerateChallenge() (*CaptchaChallenge, error) {
	driver := base64Captcha.NewDriverString(
		positiveOr(s.cfg.Height, 80),
		positiveOr(s.cfg.Width, 240),
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		positiveOr(s.cfg.Length, 5),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码。未启用时直接放行。
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := positiveOr(s.cfg.MaxStore, 10240)
		expire := time.Duration(positiveOr(s.cfg.ExpireSeconds, 300)) * time.Second
		s.store = base64Captcha.NewMemoryStore(maxStore, expire)
	}
	return s.store
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
