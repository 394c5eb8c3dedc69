package pendant

import (
	"context"
	"fmt"

	"github.com/iwtcode/pendantService/internal/adapters/repositories/jsonfile"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/iwtcode/pendantService/internal/services/pendant_service"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для встраивания пульта в процесс без HTTP.
// Все операции сервиса доступны напрямую через встроенный интерфейс.
type Client struct {
	interfaces.PendantService

	svc    *pendant_service.PendantService
	config *Config
	logger *logging.Logger
}

// New создает клиента, загружает программы и запускает главный цикл.
func New(cfg *Config) (*Client, error) {
	logger := logging.NewLogger(&logging.Config{
		Enabled: cfg.LogLevel != "off" && cfg.LogLevel != "none",
		Level:   cfg.LogLevel,
	}, "Pendant")

	var table *interlock.CodeTable
	if cfg.ErrorTableFile != "" {
		t, err := interlock.LoadCodeTable(cfg.ErrorTableFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load error table: %w", err)
		}
		table = t
	}

	bindings, err := pendant_service.ParseSensorBindings(cfg.SensorBindings)
	if err != nil {
		return nil, err
	}
	mode, err := pendant_service.ParseMovementMode(cfg.MovementMode)
	if err != nil {
		return nil, err
	}

	var repo interfaces.ProgramRepository
	if cfg.ProgramsFile != "" {
		r, err := jsonfile.NewProgramRepository(cfg.ProgramsFile, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open program store: %w", err)
		}
		if cfg.Watch {
			repo = r
		} else {
			repo = struct{ interfaces.ProgramRepository }{r}
		}
	}

	svc, err := pendant_service.NewPendantService(pendant_service.Options{
		CodeTable:      table,
		InputCount:     cfg.InputCount,
		FrameInterval:  cfg.FrameInterval,
		Mode:           mode,
		SensorBindings: bindings,
	}, repo, nil, nil, logger)
	if err != nil {
		return nil, err
	}
	if err := svc.Start(context.Background()); err != nil {
		return nil, err
	}

	return &Client{
		PendantService: svc,
		svc:            svc,
		config:         cfg,
		logger:         logger,
	}, nil
}

// Close останавливает главный цикл.
func (c *Client) Close() {
	if err := c.svc.Stop(context.Background()); err != nil {
		c.logger.Warn("Failed to stop pendant service", "error", err)
	}
	_ = c.logger.Close()
}

// Enqueue передает сырой JSON-сигнал датчика в очередь главного цикла.
func (c *Client) Enqueue(raw []byte) {
	c.svc.Enqueue(raw)
}

// CanRun сообщает, разрешен ли запуск программы.
func (c *Client) CanRun(ctx context.Context) (bool, error) {
	state, err := c.InterlockState(ctx)
	if err != nil {
		return false, err
	}
	return state.CanRun, nil
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger.Logrus()
}
