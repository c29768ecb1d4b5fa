package provider

import (
	"time"

	"github.com/pizzaorder-next/internal/cache"
	"github.com/pizzaorder-next/internal/cart"
	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/logger"
	"github.com/pizzaorder-next/internal/models"
	"github.com/pizzaorder-next/internal/queue"
	"github.com/pizzaorder-next/internal/repository"
	"github.com/pizzaorder-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartManager *cart.Manager

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	ToppingRepo repository.ToppingRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthService    *service.AuthService
	EmailService   *service.EmailService
	CaptchaService *service.CaptchaService
	ProductService *service.ProductService
	ToppingService *service.ToppingService
	CartService    *service.CartService
	OrderService   *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initCart()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ToppingRepo = repository.NewToppingRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initCart() {
	// Redis 不可用时走纯内存模式，购物车仅在进程生命周期内有效
	var store cart.Store
	if cs := cache.NewCartStore(); cs != nil {
		store = cs
	} else {
		logger.Warnw("provider_cart_store_disabled", "mode", "memory_only")
	}

	idleTTL := time.Duration(c.Config.Cart.IdleMinutes) * time.Minute
	c.CartManager = cart.NewManager(store, idleTTL)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ToppingRepo)
	c.ToppingService = service.NewToppingService(c.ToppingRepo)
	c.CartService = service.NewCartService(c.CartManager, service.NewCatalog(c.ProductRepo), c.ToppingRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartService, c.QueueClient)
}

// Close 释放容器持有的资源（落盘购物车、关闭队列连接）
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.CartManager != nil {
		c.CartManager.Close()
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
