package router

import (
	"fmt"
	"strings"

	"github.com/pizzaorder-next/internal/cache"
	"github.com/pizzaorder-next/internal/config"
	adminhandlers "github.com/pizzaorder-next/internal/http/handlers/admin"
	publichandlers "github.com/pizzaorder-next/internal/http/handlers/public"
	"github.com/pizzaorder-next/internal/logger"
	"github.com/pizzaorder-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "po"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/menu", publicHandler.GetMenu)
			public.GET("/menu/:slug", publicHandler.GetProduct)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:index", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:index", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRoleMiddleware())
		{
			admin.GET("/products", adminHandler.AdminListProducts)
			admin.GET("/products/:id", adminHandler.AdminGetProduct)
			admin.POST("/products", adminHandler.AdminCreateProduct)
			admin.PUT("/products/:id", adminHandler.AdminUpdateProduct)
			admin.DELETE("/products/:id", adminHandler.AdminDeleteProduct)

			admin.GET("/toppings", adminHandler.AdminListToppings)
			admin.POST("/toppings", adminHandler.AdminCreateTopping)
			admin.PUT("/toppings/:id", adminHandler.AdminUpdateTopping)
			admin.DELETE("/toppings/:id", adminHandler.AdminDeleteTopping)

			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
