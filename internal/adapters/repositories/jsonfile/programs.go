// Package jsonfile хранит библиотеку программ в одном JSON-документе на диске.
package jsonfile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
)

// reloadDebounce объединяет серию событий одной записи файла.
const reloadDebounce = 100 * time.Millisecond

type ProgramRepository struct {
	path   string
	logger *logging.Logger

	mu   sync.Mutex
	last [sha256.Size]byte
}

func NewProgramRepository(path string, logger *logging.Logger) (*ProgramRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог программ: %w", err)
	}
	return &ProgramRepository{path: path, logger: logger.WithPrefix("STORAGE")}, nil
}

// LoadAll читает все программы. Отсутствующий файл означает пустую библиотеку.
func (r *ProgramRepository) LoadAll(ctx context.Context) ([]*program.Program, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*program.Program{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл программ: %w", err)
	}

	r.mu.Lock()
	r.last = sha256.Sum256(data)
	r.mu.Unlock()

	if len(bytes.TrimSpace(data)) == 0 {
		return []*program.Program{}, nil
	}
	programs, err := program.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("файл программ %s поврежден: %w", r.path, err)
	}
	return programs, nil
}

// SaveAll атомарно перезаписывает файл через временный файл и переименование.
func (r *ProgramRepository) SaveAll(ctx context.Context, programs []*program.Program) error {
	data, err := program.Marshal(programs)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл программ: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось заменить файл программ: %w", err)
	}
	r.last = sha256.Sum256(data)
	return nil
}

// Watch вызывает onChange, когда файл изменен другим процессом.
// Собственные записи репозитория распознаются по содержимому и пропускаются.
func (r *ProgramRepository) Watch(ctx context.Context, onChange func([]*program.Program)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(r.path), err)
	}
	r.logger.Info("Watching programs file", "path", r.path)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.logger.Debug("Programs file event", "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if programs, changed := r.reload(); changed {
				onChange(programs)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (r *ProgramRepository) reload() ([]*program.Program, bool) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Warn("Failed to read changed programs file", "error", err)
		return nil, false
	}
	sum := sha256.Sum256(data)

	r.mu.Lock()
	if sum == r.last {
		r.mu.Unlock()
		return nil, false
	}
	r.last = sum
	r.mu.Unlock()

	programs, err := program.Unmarshal(data)
	if err != nil {
		r.logger.Warn("Changed programs file is invalid, keeping current programs", "error", err)
		return nil, false
	}
	return programs, true
}
