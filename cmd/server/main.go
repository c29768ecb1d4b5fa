package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/pizzaorder-next/internal/app"
	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/logger"
	"github.com/pizzaorder-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			log.Fatalw("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		log.Warnw("JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		log.Fatalw("数据库初始化失败", "error", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		log.Fatalw("数据库迁移失败", "error", err)
	}

	// 初始化默认管理员账号
	defaultAdminEmail := os.Getenv("PO_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("PO_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		log.Warnw("未设置 PO_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	} else if err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		log.Warnw("初始化默认管理员失败", "error", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		log.Fatalw("服务运行失败", "error", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiYellow + "██████╗ ██╗███████╗███████╗ █████╗      ██████╗ ██████╗ ██████╗ ███████╗██████╗ " + ansiReset)
	fmt.Println(ansiYellow + "██╔══██╗██║╚══███╔╝╚══███╔╝██╔══██╗    ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗" + ansiReset)
	fmt.Println(ansiYellow + "██████╔╝██║  ███╔╝   ███╔╝ ███████║    ██║   ██║██████╔╝██║  ██║█████╗  ██████╔╝" + ansiReset)
	fmt.Println(ansiYellow + "██╔═══╝ ██║ ███╔╝   ███╔╝  ██╔══██║    ██║   ██║██╔══██╗██║  ██║██╔══╝  ██╔══██╗" + ansiReset)
	fmt.Println(ansiYellow + "██║     ██║███████╗███████╗██║  ██║    ╚██████╔╝██║  ██║██████╔╝███████╗██║  ██║" + ansiReset)
	fmt.Println(ansiYellow + "╚═╝     ╚═╝╚══════╝╚══════╝╚═╝  ╚═╝     ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiRed + ansiBold + "PizzaOrder-Next API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
