package pendant_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/pendantService/internal/middleware/logging"
)

var ErrLoopStopped = errors.New("main loop is not running")

// MainLoop - единственная горутина, владеющая состоянием пульта.
// Остальные горутины передают в нее замыкания (Do) или сырые сообщения (Enqueue).
// Do нельзя вызывать из самого цикла: это приведет к взаимной блокировке.
type MainLoop struct {
	frame  time.Duration
	logger *logging.Logger

	tasks chan func()

	mu      sync.Mutex
	queue   [][]byte
	wake    chan struct{}
	running bool

	onFrame   []func(dt time.Duration)
	onMessage func(raw []byte)

	done    chan struct{}
	stopped chan struct{}
}

func NewMainLoop(frame time.Duration, logger *logging.Logger) *MainLoop {
	if frame <= 0 {
		frame = 20 * time.Millisecond
	}
	return &MainLoop{
		frame:  frame,
		logger: logger.WithPrefix("LOOP"),
		tasks:  make(chan func()),
		wake:   make(chan struct{}, 1),
	}
}

// OnFrame регистрирует обработчик кадра. Вызывать до Start.
func (l *MainLoop) OnFrame(fn func(dt time.Duration)) {
	l.onFrame = append(l.onFrame, fn)
}

// OnMessage задает обработчик сообщений из очереди. Вызывать до Start.
func (l *MainLoop) OnMessage(fn func(raw []byte)) {
	l.onMessage = fn
}

func (l *MainLoop) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.done = make(chan struct{})
	l.stopped = make(chan struct{})
	l.mu.Unlock()

	go l.run()
	l.logger.Info("Main loop started", "frame", l.frame)
}

func (l *MainLoop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.done)
	l.mu.Unlock()

	<-l.stopped
	l.logger.Info("Main loop stopped")
}

// Do исполняет fn в главном цикле и ждет результата.
func (l *MainLoop) Do(ctx context.Context, fn func() error) error {
	l.mu.Lock()
	running, done := l.running, l.done
	l.mu.Unlock()
	if !running {
		return ErrLoopStopped
	}

	result := make(chan error, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				l.logger.Error("Task panicked", "panic", r)
				result <- fmt.Errorf("task panicked: %v", r)
			}
		}()
		result <- fn()
	}

	select {
	case l.tasks <- task:
	case <-done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue ставит сообщение в очередь цикла. Порядок сохраняется, очередь не ограничена.
func (l *MainLoop) Enqueue(raw []byte) {
	l.mu.Lock()
	l.queue = append(l.queue, raw)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *MainLoop) drain() {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	if l.onMessage == nil {
		return
	}
	for _, raw := range batch {
		l.guard("message", func() { l.onMessage(raw) })
	}
}

// guard не дает панике обработчика остановить цикл.
func (l *MainLoop) guard(source string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Handler panicked", "source", source, "panic", r)
		}
	}()
	fn()
}

func (l *MainLoop) run() {
	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()
	defer close(l.stopped)

	last := time.Now()
	for {
		select {
		case <-l.done:
			l.drain()
			return
		case task := <-l.tasks:
			task()
		case <-l.wake:
			l.drain()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			for _, fn := range l.onFrame {
				l.guard("frame", func() { fn(dt) })
			}
		}
	}
}
