package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务（注册、登录、Token 签发与校验）
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := JWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 用户注册，成功后直接签发 Token
func (s *AuthService) Register(email, password, displayName, locale string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if strings.TrimSpace(displayName) == "" {
		displayName = resolveNicknameFromEmail(normalized)
	}
	if !isLocaleSupported(locale) {
		locale = "he"
	}
	user := &models.User{
		Email:        normalized,
		PasswordHash: hashedPassword,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         constants.UserRoleUser,
		Locale:       locale,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expiresAt, nil
}

// Login 用户登录
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expiresAt, nil
}

// ChangePassword 修改密码，同时使旧 Token 全部失效
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hashedPassword
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	return s.userRepo.Update(user)
}

// GetProfile 获取用户资料
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 更新昵称与语言偏好
func (s *AuthService) UpdateProfile(userID uint, displayName, locale string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if trimmed := strings.TrimSpace(displayName); trimmed != "" {
		user.DisplayName = trimmed
	}
	if isLocaleSupported(locale) {
		user.Locale = locale
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrEmailInvalid
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrEmailInvalid
	}
	return trimmed, nil
}

func resolveNicknameFromEmail(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}

func isLocaleSupported(locale string) bool {
	switch locale {
	case "en", "he":
		return true
	}
	return false
}
