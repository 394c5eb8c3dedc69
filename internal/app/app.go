package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/iwtcode/pendantService/internal/adapters/handlers"
	"github.com/iwtcode/pendantService/internal/adapters/repositories/jsonfile"
	"github.com/iwtcode/pendantService/internal/adapters/repositories/postgres"
	"github.com/iwtcode/pendantService/internal/config"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/iwtcode/pendantService/internal/middleware/swagger"
	"github.com/iwtcode/pendantService/internal/services/kafka"
	"github.com/iwtcode/pendantService/internal/services/pendant_service"
	"github.com/iwtcode/pendantService/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		RepositoryModule,
		ProducerModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Invoke-функции для запуска фоновых задач и хуков жизненного цикла
		fx.Invoke(InvokePendantService),
		fx.Invoke(InvokeSignalConsumer),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "PendantServiceApp")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// Storage - хранилище программ и, для postgres, журнал переходов ошибок.
type Storage struct {
	Programs interfaces.ProgramRepository
	Journal  interfaces.OccurrenceLog
}

// ProvideStorage выбирает хранилище по STORAGE_DRIVER.
func ProvideStorage(cfg *config.AppConfig, logger *logging.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		repo, err := postgres.NewRepository(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Storage{Programs: repo.ProgramRepository, Journal: repo.OccurrenceLog}, nil
	default:
		repo, err := jsonfile.NewProgramRepository(cfg.Storage.ProgramsFile, logger)
		if err != nil {
			return nil, err
		}
		if !cfg.Storage.Watch {
			// Без Watch сервис не подписывается на внешние изменения файла.
			return &Storage{Programs: struct{ interfaces.ProgramRepository }{repo}}, nil
		}
		return &Storage{Programs: repo}, nil
	}
}

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(ProvideStorage),
)

// ProvideProducer возвращает nil, если Kafka выключена.
func ProvideProducer(cfg *config.AppConfig, logger *logging.Logger) (interfaces.KafkaService, error) {
	if !cfg.Kafka.Enable {
		logger.Info("Kafka is disabled, events are not exported")
		return nil, nil
	}
	return kafka.NewKafkaProducer(cfg)
}

var ProducerModule = fx.Module("producer_module",
	fx.Provide(ProvideProducer),
)

// ProvidePendantService собирает сервис пульта из настроек ячейки.
func ProvidePendantService(
	cfg *config.AppConfig,
	storage *Storage,
	producer interfaces.KafkaService,
	logger *logging.Logger,
) (*pendant_service.PendantService, error) {
	var table *interlock.CodeTable
	if cfg.Cell.ErrorTableFile != "" {
		t, err := interlock.LoadCodeTable(cfg.Cell.ErrorTableFile)
		if err != nil {
			return nil, err
		}
		table = t
	}

	bindings, err := pendant_service.ParseSensorBindings(cfg.Cell.SensorBindings)
	if err != nil {
		return nil, err
	}
	mode, err := pendant_service.ParseMovementMode(cfg.Cell.MovementMode)
	if err != nil {
		return nil, err
	}

	return pendant_service.NewPendantService(pendant_service.Options{
		CodeTable:      table,
		InputCount:     cfg.Cell.DigitalInputCount,
		FrameInterval:  cfg.Cell.FrameInterval,
		Mode:           mode,
		SensorBindings: bindings,
	}, storage.Programs, producer, storage.Journal, logger)
}

var ServiceModule = fx.Module("service_module",
	fx.Provide(
		ProvidePendantService,
		func(s *pendant_service.PendantService) interfaces.PendantService { return s },
	),
)

func ProvideUsecases(svc interfaces.PendantService, storage *Storage) interfaces.Usecases {
	return usecases.NewUsecases(svc, storage.Journal)
}

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(ProvideUsecases),
)

func NewSwaggerConfig() *swagger.Config {
	return &swagger.Config{
		Enabled: true,
		Path:    "/swagger",
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokePendantService запускает главный цикл пульта и останавливает его вместе с приложением.
func InvokePendantService(lc fx.Lifecycle, svc *pendant_service.PendantService, producer interfaces.KafkaService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting pendant service...")
			if err := svc.Start(ctx); err != nil {
				logger.Error("FATAL: Failed to start pendant service", "error", err)
				return err // Это остановит запуск приложения
			}
			logger.Info("Pendant service started.", "can_run", svc.Requester().CanRun())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping pendant service...")
			if err := svc.Stop(ctx); err != nil {
				return err
			}
			if producer != nil {
				return producer.Close()
			}
			return nil
		},
	})
}

// InvokeSignalConsumer читает сигналы датчиков из Kafka и передает их в главный цикл.
func InvokeSignalConsumer(lc fx.Lifecycle, cfg *config.AppConfig, svc *pendant_service.PendantService, logger *logging.Logger) error {
	if !cfg.Kafka.Enable || cfg.Kafka.SignalsTopic == "" {
		return nil
	}

	consumer, err := kafka.NewSignalConsumer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("Signal consumer is starting", "topic", cfg.Kafka.SignalsTopic)
			go func() {
				defer close(done)
				if err := consumer.Run(ctx, svc.Enqueue); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Signal consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
	return nil
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
