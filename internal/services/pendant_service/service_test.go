package pendant_service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"
	"github.com/iwtcode/pendantService/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	mu       sync.Mutex
	programs []*program.Program
	saves    int
	onChange func([]*program.Program)
	watching chan struct{}
	delay    func(count int) time.Duration
}

func (r *memoryRepository) LoadAll(context.Context) ([]*program.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.programs, nil
}

func (r *memoryRepository) SaveAll(_ context.Context, programs []*program.Program) error {
	if r.delay != nil {
		time.Sleep(r.delay(len(programs)))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs = programs
	r.saves++
	return nil
}

func (r *memoryRepository) Watch(ctx context.Context, onChange func([]*program.Program)) error {
	r.mu.Lock()
	r.onChange = onChange
	r.mu.Unlock()
	close(r.watching)
	<-ctx.Done()
	return ctx.Err()
}

func newTestService(t *testing.T, repo *memoryRepository, mode MovementMode) *PendantService {
	t.Helper()
	var r interfaces.ProgramRepository
	if repo != nil {
		r = repo
	}
	s, err := NewPendantService(Options{
		InputCount:     8,
		FrameInterval:  time.Hour,
		Mode:           mode,
		SensorBindings: map[string]string{"estop0": "S-1001-0", "gate": "S-1002"},
	}, r, nil, nil, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

func TestNewPendantService_RejectsUnknownSensorCode(t *testing.T) {
	_, err := NewPendantService(Options{
		SensorBindings: map[string]string{"estop9": "S-1001-9"},
	}, nil, nil, nil, logging.Nop())
	assert.Error(t, err)
}

func TestPendantService_ProgramLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{watching: make(chan struct{})}
	s := newTestService(t, repo, ModeAuto)

	created, err := s.CreateProgram(ctx, "weld", "seam")
	require.NoError(t, err)
	assert.Equal(t, "weld", created.Name)
	assert.Equal(t, 1, repo.saves)

	_, err = s.CreateProgram(ctx, "weld", "")
	assert.ErrorIs(t, err, program.ErrProgramExists)

	_, err = s.DuplicateProgram(ctx, "weld", "weld-copy")
	require.NoError(t, err)

	list, err := s.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "weld", list[0].Name)

	_, err = s.OpenProgram(ctx, "weld")
	require.NoError(t, err)
	assert.ErrorIs(t, s.DeleteProgram(ctx, "weld"), program.ErrProgramInUse)
	require.NoError(t, s.DeleteProgram(ctx, "weld-copy"))

	require.Len(t, repo.programs, 1)
}

func TestPendantService_EditAndSave(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{watching: make(chan struct{})}
	s := newTestService(t, repo, ModeAuto)

	_, err := s.CreateProgram(ctx, "pick", "")
	require.NoError(t, err)
	_, err = s.OpenProgram(ctx, "pick")
	require.NoError(t, err)

	_, err = s.Edit(ctx, models.EditRequest{Op: models.EditInsert, Kind: "delay"})
	require.NoError(t, err)
	_, err = s.Edit(ctx, models.EditRequest{Op: models.EditSelectPart, Part: 1})
	require.NoError(t, err)
	state, err := s.Edit(ctx, models.EditRequest{Op: models.EditInput, Token: "3"})
	require.NoError(t, err)
	assert.Equal(t, "WAIT 3.00(sec)", state.Text)
	assert.Equal(t, "3.00", state.Text[state.HighlightStart:state.HighlightEnd])

	_, err = s.Edit(ctx, models.EditRequest{Op: "jump"})
	assert.ErrorIs(t, err, ErrUnknownEditOp)
	_, err = s.Edit(ctx, models.EditRequest{Op: models.EditInsert, Kind: "LOOP"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	require.NoError(t, s.SavePrograms(ctx))
	require.Len(t, repo.programs, 1)
	inst, err := repo.programs[0].At(0)
	require.NoError(t, err)
	assert.Equal(t, instruction.KindDelay, inst.Kind())
	assert.Equal(t, 300, inst.Delay().Centis)
}

func TestPendantService_InterlockGatesStart(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, &memoryRepository{watching: make(chan struct{})}, ModeAuto)

	_, err := s.CreateProgram(ctx, "main", "")
	require.NoError(t, err)
	_, err = s.LoadProgram(ctx, "main")
	require.NoError(t, err)

	require.NoError(t, s.Signal(ctx, models.Signal{Sensor: "gate", Active: true}))
	st, err := s.InterlockState(ctx)
	require.NoError(t, err)
	assert.False(t, st.CanRun)
	assert.Equal(t, 1, st.Counters["security"])

	_, err = s.StartProgram(ctx)
	assert.ErrorIs(t, err, ErrStartRefused)

	require.NoError(t, s.Signal(ctx, models.Signal{Sensor: "gate", Active: false}))
	codes, err := s.ResetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S-1002"}, codes)

	exec, err := s.StartProgram(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", exec.Program)
}

func TestPendantService_HandleError(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, ModeAuto)

	res, err := s.HandleError(ctx, "A-3002", "raised")
	require.NoError(t, err)
	assert.True(t, res.Handled)

	res, err = s.HandleError(ctx, "A-3002", "Raised")
	require.NoError(t, err)
	assert.False(t, res.Handled)

	_, err = s.HandleError(ctx, "A-3002", "bogus")
	assert.Error(t, err)

	errs, err := s.ListErrors(ctx)
	require.NoError(t, err)
	for _, e := range errs {
		if e.Code == "A-3002" {
			assert.Equal(t, "Raised", e.Status)
			assert.Len(t, e.Occurrences, 1)
		}
	}
}

func TestPendantService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, ModeAuto)

	events, cancel := s.Subscribe()
	defer cancel()

	require.NoError(t, s.Signal(ctx, models.Signal{Sensor: "estop0", Active: true}))

	var codes []string
	timeout := time.After(time.Second)
	for len(codes) < 2 {
		select {
		case ev := <-events:
			require.Equal(t, models.EventInterlock, ev.Type)
			codes = append(codes, ev.Interlock.Code)
		case <-timeout:
			t.Fatalf("expected two interlock events, got %v", codes)
		}
	}
	assert.ElementsMatch(t, []string{"S-1001-0", "S-1001"}, codes)
}

func TestPendantService_EnqueuedSignals(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, ModeAuto)

	s.Enqueue([]byte(`{"input":1,"active":true}`))
	s.Enqueue([]byte(`not json`))

	assert.Eventually(t, func() bool {
		inputs, err := s.Inputs(ctx)
		return err == nil && inputs[1]
	}, time.Second, 10*time.Millisecond)
}

func TestPendantService_ReloadKeepsOpenProgram(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{
		programs: []*program.Program{program.New("a", ""), program.New("b", "")},
		watching: make(chan struct{}),
	}
	s := newTestService(t, repo, ModeAuto)
	<-repo.watching

	_, err := s.OpenProgram(ctx, "a")
	require.NoError(t, err)
	_, err = s.Edit(ctx, models.EditRequest{Op: models.EditInsert, Kind: "use_tool"})
	require.NoError(t, err)

	external := program.New("a", "")
	repo.mu.Lock()
	onChange := repo.onChange
	repo.mu.Unlock()
	onChange([]*program.Program{external, program.New("c", "")})

	list, err := s.ListPrograms(ctx)
	require.NoError(t, err)
	names := []string{}
	for _, p := range list {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)

	view, err := s.GetProgram(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "USE_TOOL", view.Lines[0].Kind)
}

func TestPendantService_JogAndTouchUp(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, ModeT1)

	_, err := s.CreateProgram(ctx, "p", "")
	require.NoError(t, err)
	_, err = s.OpenProgram(ctx, "p")
	require.NoError(t, err)
	_, err = s.Edit(ctx, models.EditRequest{Op: models.EditInsert, Kind: "move"})
	require.NoError(t, err)

	exec, err := s.Jog(ctx, [3]float64{0.5, 0, 0.25})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0.5, 0, 0.25}, exec.Position)

	_, err = s.Edit(ctx, models.EditRequest{Op: models.EditTouchUp})
	require.NoError(t, err)
	view, err := s.GetProgram(ctx, "p")
	require.NoError(t, err)
	require.Len(t, view.Points, 1)
	assert.Equal(t, [3]float64{0.5, 0, 0.25}, view.Points[0].Position)
}

func TestPendantService_SetMode(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, ModeT1)

	st, err := s.SetMode(ctx, "auto")
	require.NoError(t, err)
	assert.Equal(t, "AUTO", st.Mode)

	_, err = s.SetMode(ctx, "T3")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestPendantService_OutOfRangeInputSignal(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil, ModeAuto)

	s.Enqueue([]byte(`{"input":18446744073709551615,"active":true}`))
	huge := ^uint(0)
	assert.Error(t, s.Signal(ctx, models.Signal{Input: &huge, Active: true}))

	inputs, err := s.Inputs(ctx)
	require.NoError(t, err)
	assert.Len(t, inputs, 8)
	for _, v := range inputs {
		assert.False(t, v)
	}
}

func TestPendantService_ConcurrentCreatesAllPersisted(t *testing.T) {
	const n = 8
	repo := &memoryRepository{
		watching: make(chan struct{}),
		// Меньшие (более старые) снимки пишутся дольше.
		delay: func(count int) time.Duration { return time.Duration(n-count) * 5 * time.Millisecond },
	}
	s := newTestService(t, repo, ModeAuto)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateProgram(context.Background(), fmt.Sprintf("cell_%d", i), "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	names := make([]string, 0, len(repo.programs))
	for _, p := range repo.programs {
		names = append(names, p.Name)
	}
	assert.Len(t, names, n)
	for i := 0; i < n; i++ {
		assert.Contains(t, names, fmt.Sprintf("cell_%d", i))
	}
}
