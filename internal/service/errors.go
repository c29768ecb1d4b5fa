package service

import "errors"

// 服务层哨兵错误，处理器依据这些错误映射响应码与消息键
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")
	ErrWeakPassword       = errors.New("密码不符合安全策略")
	ErrEmailExists        = errors.New("邮箱已注册")
	ErrEmailInvalid       = errors.New("邮箱格式不正确")
	ErrUserDisabled       = errors.New("账号已被禁用")

	ErrProductNotAvailable = errors.New("商品不可用")
	ErrToppingNotAvailable = errors.New("配料不可用")
	ErrInvalidProductType  = errors.New("未知的商品类型")
	ErrInvalidSize         = errors.New("该商品不支持此尺寸")

	ErrCartEmpty   = errors.New("购物车为空")
	ErrInvalidItem = errors.New("无效的购物车项")

	ErrInvalidOrderStatus = errors.New("未知的订单状态")

	ErrCaptchaRequired = errors.New("需要验证码")
	ErrCaptchaInvalid  = errors.New("验证码错误或已过期")

	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
)
