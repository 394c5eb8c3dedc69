package pendant_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/pendantService/internal/domain/dio"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/internal/domain/simclock"
	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/iwtcode/pendantService/models"
)

// Options - параметры ячейки, из которых собирается сервис.
type Options struct {
	CodeTable      *interlock.CodeTable
	InputCount     int
	FrameInterval  time.Duration
	Mode           MovementMode
	SensorBindings map[string]string
}

// PendantService владеет всем состоянием пульта. Каждая операция исполняется в главном цикле.
type PendantService struct {
	repo   interfaces.ProgramRepository
	logger *logging.Logger

	loop      *MainLoop
	clock     *simclock.Scheduler
	bank      *dio.Bank
	requester *interlock.Requester
	errors    *ErrorHandler
	sensors   *Sensors
	library   *program.Library
	editor    *Editor
	executor  *Executor
	events    *EventDispatcher

	// generation увеличивается главным циклом при каждом снимке библиотеки.
	// savedGeneration защищен saveMu: более старый снимок не пишется поверх нового.
	generation      uint64
	saveMu          sync.Mutex
	savedGeneration uint64

	mu          sync.Mutex
	cancelWatch context.CancelFunc
	watchDone   chan struct{}
}

// NewPendantService собирает сервис. repo, producer и journal могут быть nil.
// Ошибка возвращается, если таблица кодов или привязки датчиков некорректны.
func NewPendantService(
	opts Options,
	repo interfaces.ProgramRepository,
	producer interfaces.KafkaService,
	journal interfaces.OccurrenceLog,
	logger *logging.Logger,
) (*PendantService, error) {
	table := opts.CodeTable
	if table == nil {
		var err error
		if table, err = interlock.DefaultCodeTable(); err != nil {
			return nil, err
		}
	}
	requester, err := interlock.NewRequesterFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("invalid error code table: %w", err)
	}
	if opts.Mode == "" {
		opts.Mode = ModeT1
	}

	s := &PendantService{
		repo:      repo,
		logger:    logger.WithPrefix("PENDANT"),
		loop:      NewMainLoop(opts.FrameInterval, logger),
		clock:     simclock.New(),
		bank:      dio.NewBank(opts.InputCount),
		requester: requester,
		errors:    NewErrorHandler(requester, logger),
		library:   program.NewLibrary(),
		events:    NewEventDispatcher(producer, journal, logger),
	}
	s.sensors = NewSensors(opts.SensorBindings, s.errors, s.bank)
	if err := requester.Validate(s.sensors.Codes()...); err != nil {
		return nil, fmt.Errorf("invalid sensor bindings: %w", err)
	}

	s.executor = NewExecutor(s.clock, requester, s.bank, opts.Mode)
	s.editor = NewEditor(s.bank, s.executor.Pose)
	s.library.AddGuard(s.editor.IsOpen)
	s.library.AddGuard(s.executor.IsLoaded)

	requester.OnEvent(func(ev interlock.Event) {
		s.events.Publish(models.Event{
			Type:      models.EventInterlock,
			Timestamp: ev.Timestamp,
			Interlock: interlockEvent(ev),
		})
	})
	s.executor.OnStateChange(func(RunState, int) {
		s.events.Publish(models.Event{
			Type:      models.EventExecution,
			Timestamp: time.Now(),
			Execution: executionState(s.executor),
		})
	})

	s.loop.OnFrame(s.clock.Advance)
	s.loop.OnMessage(s.handleMessage)
	return s, nil
}

// Start загружает программы из хранилища и запускает главный цикл.
func (s *PendantService) Start(ctx context.Context) error {
	if s.repo != nil {
		programs, err := s.repo.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load programs: %w", err)
		}
		if err := s.library.Replace(programs); err != nil {
			return fmt.Errorf("failed to load programs: %w", err)
		}
		s.logger.Info("Programs loaded", "count", len(programs))
	}

	s.events.Start()
	s.loop.Start()

	if w, ok := s.repo.(interfaces.ProgramWatcher); ok {
		watchCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		s.mu.Lock()
		s.cancelWatch, s.watchDone = cancel, done
		s.mu.Unlock()
		go func() {
			defer close(done)
			if err := w.Watch(watchCtx, s.reload); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("Program watcher stopped", "error", err)
			}
		}()
	}
	return nil
}

// Stop останавливает наблюдение за хранилищем, главный цикл и доставку событий.
func (s *PendantService) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancelWatch, s.watchDone
	s.cancelWatch, s.watchDone = nil, nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
		}
	}

	s.loop.Stop()
	s.events.Stop()
	return nil
}

// Enqueue передает сырой сигнал датчика в очередь главного цикла.
func (s *PendantService) Enqueue(raw []byte) {
	s.loop.Enqueue(raw)
}

// Requester открывает контроллеры ошибок для проверок при старте.
func (s *PendantService) Requester() *interlock.Requester { return s.requester }
