package models

import (
	"strings"

	"github.com/pizzaorder-next/internal/constants"
	"github.com/pizzaorder-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.UserRoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	if strings.TrimSpace(email) == "" {
		email = "admin@pizzaorder.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		DisplayName:  "Admin",
		Role:         constants.UserRoleAdmin,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", admin.Email)
		logger.Warnw("default_admin_password_change_required", "email", admin.Email)
	} else {
		logger.Warnw("default_admin_created", "email", admin.Email, "password_hidden", true)
	}
	return nil
}
