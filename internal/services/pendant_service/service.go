package pendant_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/models"
)

var (
	ErrUnknownEditOp  = errors.New("unknown edit operation")
	ErrUnknownKind    = errors.New("unknown instruction kind")
	ErrProgramRunning = errors.New("program is running")
)

// --- Библиотека программ ---

func (s *PendantService) ListPrograms(ctx context.Context) ([]models.ProgramSummary, error) {
	var out []models.ProgramSummary
	err := s.loop.Do(ctx, func() error {
		list := s.library.List()
		out = make([]models.ProgramSummary, len(list))
		for i, p := range list {
			out[i] = programSummary(p)
		}
		return nil
	})
	return out, err
}

func (s *PendantService) GetProgram(ctx context.Context, name string) (*models.ProgramView, error) {
	var out *models.ProgramView
	err := s.loop.Do(ctx, func() error {
		p, err := s.library.Get(name)
		if err != nil {
			return err
		}
		out = programView(p)
		return nil
	})
	return out, err
}

func (s *PendantService) CreateProgram(ctx context.Context, name, description string) (*models.ProgramView, error) {
	var out *models.ProgramView
	err := s.mutate(ctx, func() error {
		p, err := s.library.Create(name, description)
		if err != nil {
			return err
		}
		out = programView(p)
		return nil
	})
	return out, err
}

func (s *PendantService) DuplicateProgram(ctx context.Context, src, dst string) (*models.ProgramView, error) {
	var out *models.ProgramView
	err := s.mutate(ctx, func() error {
		p, err := s.library.Duplicate(src, dst)
		if err != nil {
			return err
		}
		out = programView(p)
		return nil
	})
	return out, err
}

func (s *PendantService) DeleteProgram(ctx context.Context, name string) error {
	return s.mutate(ctx, func() error {
		return s.library.Delete(name)
	})
}

// SavePrograms записывает текущее содержимое библиотеки в хранилище.
func (s *PendantService) SavePrograms(ctx context.Context) error {
	return s.mutate(ctx, func() error { return nil })
}

// mutate исполняет fn в главном цикле и сохраняет снимок библиотеки вне его.
// Снимки пишутся в порядке их создания; устаревший снимок пропускается,
// так как более новый уже содержит его изменения.
func (s *PendantService) mutate(ctx context.Context, fn func() error) error {
	var (
		snapshot []*program.Program
		gen      uint64
	)
	err := s.loop.Do(ctx, func() error {
		if err := fn(); err != nil {
			return err
		}
		list := s.library.List()
		snapshot = make([]*program.Program, len(list))
		for i, p := range list {
			snapshot[i] = p.Clone()
		}
		s.generation++
		gen = s.generation
		return nil
	})
	if err != nil || s.repo == nil {
		return err
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if gen <= s.savedGeneration {
		s.logger.Debug("Skipping stale program snapshot", "generation", gen, "saved", s.savedGeneration)
		return nil
	}
	if err := s.repo.SaveAll(ctx, snapshot); err != nil {
		s.logger.Error("Failed to save programs", "error", err)
		return fmt.Errorf("failed to save programs: %w", err)
	}
	s.savedGeneration = gen
	s.logger.Debug("Programs saved", "count", len(snapshot))
	return nil
}

// reload применяет внешнее изменение хранилища. Открытая и загруженная программы
// остаются прежними объектами, чтобы не потерять несохраненные правки.
func (s *PendantService) reload(programs []*program.Program) {
	err := s.loop.Do(context.Background(), func() error {
		keep := map[string]*program.Program{}
		if p := s.editor.Program(); p != nil {
			keep[p.Name] = p
		}
		if p := s.executor.Program(); p != nil {
			keep[p.Name] = p
		}
		merged := make([]*program.Program, 0, len(programs)+len(keep))
		for _, p := range programs {
			if kept, ok := keep[p.Name]; ok {
				merged = append(merged, kept)
				delete(keep, p.Name)
				continue
			}
			merged = append(merged, p)
		}
		for _, p := range keep {
			merged = append(merged, p)
		}
		return s.library.Replace(merged)
	})
	if err != nil {
		s.logger.Warn("Failed to apply reloaded programs", "error", err)
		return
	}
	s.logger.Info("Programs reloaded from storage", "count", len(programs))
}

// --- Редактор ---

func (s *PendantService) OpenProgram(ctx context.Context, name string) (*models.EditorState, error) {
	var out *models.EditorState
	err := s.loop.Do(ctx, func() error {
		p, err := s.library.Get(name)
		if err != nil {
			return err
		}
		s.editor.Open(p)
		out, err = editorState(s.editor)
		return err
	})
	return out, err
}

func (s *PendantService) CloseProgram(ctx context.Context) error {
	return s.loop.Do(ctx, func() error {
		s.editor.Close()
		return nil
	})
}

func (s *PendantService) EditorState(ctx context.Context) (*models.EditorState, error) {
	var out *models.EditorState
	err := s.loop.Do(ctx, func() error {
		if s.editor.Program() == nil {
			return ErrNoProgramOpen
		}
		var err error
		out, err = editorState(s.editor)
		return err
	})
	return out, err
}

func (s *PendantService) Edit(ctx context.Context, req models.EditRequest) (*models.EditorState, error) {
	var out *models.EditorState
	err := s.loop.Do(ctx, func() error {
		if err := s.applyEdit(req); err != nil {
			return err
		}
		var err error
		out, err = editorState(s.editor)
		return err
	})
	return out, err
}

func (s *PendantService) applyEdit(req models.EditRequest) error {
	p := s.editor.Program()
	if p == nil {
		return ErrNoProgramOpen
	}
	if s.executor.IsLoaded(p.Name) && s.executor.IsRunning() {
		return fmt.Errorf("%w: %s", ErrProgramRunning, p.Name)
	}

	e := s.editor
	switch req.Op {
	case models.EditGoto:
		return e.Goto(req.Line)
	case models.EditStep:
		return e.Step(req.Delta)
	case models.EditSelectPart:
		return e.SelectPart(req.Part)
	case models.EditNextPart:
		return e.NextPart()
	case models.EditPrevPart:
		return e.PrevPart()
	case models.EditInput:
		return e.Input(req.Token)
	case models.EditInsert:
		kind, err := ParseKind(req.Kind)
		if err != nil {
			return err
		}
		return e.Insert(kind, parsePosition(req.Position))
	case models.EditDelete:
		return e.Delete()
	case models.EditChangeKind:
		kind, err := ParseKind(req.Kind)
		if err != nil {
			return err
		}
		return e.ChangeKind(kind)
	case models.EditToggleComment:
		return e.ToggleComment()
	case models.EditSetText:
		return e.SetText(req.Text)
	case models.EditTouchUp:
		return e.TouchUp()
	}
	return fmt.Errorf("%w: %q", ErrUnknownEditOp, req.Op)
}

// ParseKind разбирает имя варианта строки без учета регистра.
func ParseKind(s string) (instruction.Kind, error) {
	k := instruction.Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range instruction.Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// parsePosition: по умолчанию строка вставляется под выбранной.
func parsePosition(s string) program.Position {
	if strings.EqualFold(strings.TrimSpace(s), "above") {
		return program.Above
	}
	return program.Under
}

// --- Ошибки и блокировки ---

func (s *PendantService) HandleError(ctx context.Context, code, status string) (*models.HandleResult, error) {
	st, err := interlock.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	var out *models.HandleResult
	err = s.loop.Do(ctx, func() error {
		handled, err := s.errors.Handle(code, st)
		if err != nil {
			return err
		}
		out = &models.HandleResult{Code: code, Status: st.String(), Handled: handled}
		return nil
	})
	return out, err
}

func (s *PendantService) ResetAll(ctx context.Context) ([]string, error) {
	var out []string
	err := s.loop.Do(ctx, func() error {
		var err error
		out, err = s.errors.ResetAll()
		return err
	})
	if out == nil {
		out = []string{}
	}
	return out, err
}

func (s *PendantService) ListErrors(ctx context.Context) ([]models.ErrorView, error) {
	var out []models.ErrorView
	err := s.loop.Do(ctx, func() error {
		list := s.requester.Errors()
		out = make([]models.ErrorView, len(list))
		for i, e := range list {
			out[i] = errorView(e)
		}
		return nil
	})
	return out, err
}

func (s *PendantService) InterlockState(ctx context.Context) (*models.InterlockState, error) {
	var out *models.InterlockState
	err := s.loop.Do(ctx, func() error {
		out = interlockState(s.requester)
		return nil
	})
	return out, err
}

// --- Исполнение ---

// execute исполняет fn в главном цикле и возвращает состояние исполнения после него.
func (s *PendantService) execute(ctx context.Context, fn func() error) (*models.ExecutionState, error) {
	var out *models.ExecutionState
	err := s.loop.Do(ctx, func() error {
		if err := fn(); err != nil {
			return err
		}
		out = executionState(s.executor)
		return nil
	})
	return out, err
}

func (s *PendantService) LoadProgram(ctx context.Context, name string) (*models.ExecutionState, error) {
	return s.execute(ctx, func() error {
		p, err := s.library.Get(name)
		if err != nil {
			return err
		}
		s.executor.Load(p)
		return nil
	})
}

func (s *PendantService) StartProgram(ctx context.Context) (*models.ExecutionState, error) {
	return s.execute(ctx, func() error {
		if err := s.executor.Start(); err != nil {
			s.logger.Warn("Program start refused", "error", err)
			return err
		}
		s.logger.Info("Program started", "program", s.executor.Program().Name, "mode", s.executor.Mode())
		return nil
	})
}

func (s *PendantService) StopProgram(ctx context.Context) (*models.ExecutionState, error) {
	return s.execute(ctx, func() error {
		s.executor.Stop()
		return nil
	})
}

func (s *PendantService) ResumeProgram(ctx context.Context) (*models.ExecutionState, error) {
	return s.execute(ctx, s.executor.Resume)
}

func (s *PendantService) SetMode(ctx context.Context, mode string) (*models.ExecutionState, error) {
	m, err := ParseMovementMode(mode)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, func() error {
		s.executor.SetMode(m)
		return nil
	})
}

func (s *PendantService) SetDeadman(ctx context.Context, held bool) (*models.ExecutionState, error) {
	return s.execute(ctx, func() error {
		s.executor.SetDeadman(held)
		return nil
	})
}

// Jog перемещает робота в заданную позицию вне программы.
func (s *PendantService) Jog(ctx context.Context, position [3]float64) (*models.ExecutionState, error) {
	return s.execute(ctx, func() error {
		if s.executor.IsRunning() {
			return ErrProgramRunning
		}
		pose := s.executor.Pose()
		pose.Position = mgl64.Vec3(position)
		s.executor.SetPose(pose)
		return nil
	})
}

func (s *PendantService) ExecutionState(ctx context.Context) (*models.ExecutionState, error) {
	return s.execute(ctx, func() error { return nil })
}

// --- Датчики ---

func (s *PendantService) Signal(ctx context.Context, sig models.Signal) error {
	return s.loop.Do(ctx, func() error {
		return s.sensors.Apply(sig)
	})
}

func (s *PendantService) Inputs(ctx context.Context) ([]bool, error) {
	var out []bool
	err := s.loop.Do(ctx, func() error {
		out = s.bank.Snapshot()
		return nil
	})
	return out, err
}

func (s *PendantService) Sensors() map[string]string {
	return s.sensors.Bindings()
}

func (s *PendantService) Subscribe() (<-chan models.Event, func()) {
	return s.events.Subscribe()
}

// handleMessage разбирает сигнал из очереди главного цикла.
func (s *PendantService) handleMessage(raw []byte) {
	var sig models.Signal
	if err := json.Unmarshal(raw, &sig); err != nil {
		s.logger.Warn("Malformed sensor signal", "error", err, "payload", string(raw))
		return
	}
	if err := s.sensors.Apply(sig); err != nil {
		s.logger.Warn("Sensor signal rejected", "sensor", sig.Sensor, "error", err)
	}
}
