package app

import (
	"context"
	"errors"

	"github.com/pizzaorder-next/internal/config"
	"github.com/pizzaorder-next/internal/provider"
	"github.com/pizzaorder-next/internal/router"
	"github.com/pizzaorder-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		httpService := NewHTTPService(addr, engine)
		services = append(services, httpService)
	}

	// 初始化 Worker 服务；all 模式下队列未启用则跳过
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	// 容器收尾放最后：停机时先关外部服务，再落盘购物车并断开队列
	services = append(services, &containerService{container: container})

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}

// containerService 以服务形式挂载依赖容器的生命周期
type containerService struct {
	container *provider.Container
}

func (s *containerService) Name() string {
	return "container"
}

func (s *containerService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *containerService) Stop(ctx context.Context) error {
	if s == nil || s.container == nil {
		return nil
	}
	s.container.Close()
	return nil
}
