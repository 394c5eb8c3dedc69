package pendant_service

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/dio"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/internal/domain/simclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type executorFixture struct {
	x         *Executor
	clock     *simclock.Scheduler
	requester *interlock.Requester
	bank      *dio.Bank
}

func newExecutorFixture(t *testing.T, mode MovementMode) *executorFixture {
	t.Helper()
	table, err := interlock.DefaultCodeTable()
	require.NoError(t, err)
	r, err := interlock.NewRequesterFromTable(table)
	require.NoError(t, err)

	clock := simclock.New()
	bank := dio.NewBank(8)
	return &executorFixture{
		x:         NewExecutor(clock, r, bank, mode),
		clock:     clock,
		requester: r,
		bank:      bank,
	}
}

func buildProgram(insts ...*instruction.Instruction) *program.Program {
	p := program.New("test", "")
	for _, inst := range insts {
		p.AddInstruction(inst)
	}
	return p
}

func TestExecutor_StartRefusedWithActiveSecurityError(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(instruction.NewDelay(1)))

	_, err := f.requester.RaiseError("S-1002")
	require.NoError(t, err)

	err = f.x.Start()
	assert.ErrorIs(t, err, ErrStartRefused)
	assert.False(t, f.x.IsRunning())
	assert.Equal(t, StateIdle, f.x.State())
}

func TestExecutor_StartRefusedUntilSecurityReset(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(instruction.NewDelay(1)))

	_, _ = f.requester.RaiseError("S-1002")
	_, _ = f.requester.UnraiseError("S-1002")
	assert.ErrorIs(t, f.x.Start(), ErrStartRefused)

	_, _ = f.requester.ResetError("S-1002")
	require.NoError(t, f.x.Start())
	assert.True(t, f.x.IsRunning())
}

func TestExecutor_StartWithoutProgram(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	assert.ErrorIs(t, f.x.Start(), ErrNoProgramLoaded)
}

func TestExecutor_DelayThenTool(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(
		instruction.NewDelay(0.5),
		instruction.NewUseTool(instruction.ToolOn),
	))

	require.NoError(t, f.x.Start())
	f.clock.Advance(400 * time.Millisecond)
	assert.Equal(t, StateRunning, f.x.State())
	assert.Equal(t, 0, f.x.Line())
	assert.False(t, f.x.ToolOn())

	f.clock.Advance(200 * time.Millisecond)
	assert.Equal(t, StateFinished, f.x.State())
	assert.True(t, f.x.ToolOn())
}

func TestExecutor_SkipsCommentedLines(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	delay := instruction.NewDelay(5)
	delay.SetCommented(true)
	f.x.Load(buildProgram(delay, instruction.NewUseTool(instruction.ToolOn)))

	require.NoError(t, f.x.Start())
	assert.Equal(t, StateFinished, f.x.State())
	assert.True(t, f.x.ToolOn())
}

func TestExecutor_MoveDuration(t *testing.T) {
	tests := []struct {
		name string
		mode MovementMode
		want time.Duration
	}{
		{"auto full speed", ModeAuto, time.Second},
		{"t1 limited", ModeT1, 4 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExecutorFixture(t, tt.mode)
			move := instruction.NewMove(instruction.MovementJoint, 100, 0)
			p := buildProgram(move)
			require.NoError(t, p.TouchUp(move.Move().PointNumber, program.NewPoint(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})))
			f.x.Load(p)
			f.x.SetDeadman(true)

			require.NoError(t, f.x.Start())
			f.clock.Advance(tt.want / 2)
			assert.InDelta(t, 0.5, f.x.Pose().Position.X(), 1e-6)
			assert.Equal(t, StateRunning, f.x.State())

			f.clock.Advance(tt.want / 2)
			assert.Equal(t, StateFinished, f.x.State())
			assert.InDelta(t, 1.0, f.x.Pose().Position.X(), 1e-9)
		})
	}
}

func TestExecutor_HoldOnRaisedError(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(instruction.NewDelay(1), instruction.NewUseTool(instruction.ToolOn)))
	require.NoError(t, f.x.Start())

	f.clock.Advance(300 * time.Millisecond)
	_, err := f.requester.RaiseError("R-2001")
	require.NoError(t, err)
	assert.Equal(t, StateHeld, f.x.State())
	assert.Equal(t, 0, f.x.Line())

	f.clock.Advance(5 * time.Second)
	assert.Equal(t, StateHeld, f.x.State())

	_, _ = f.requester.UnraiseError("R-2001")
	assert.ErrorIs(t, f.x.Resume(), ErrStartRefused)

	_, _ = f.requester.ResetError("R-2001")
	require.NoError(t, f.x.Resume())
	f.clock.Advance(999 * time.Millisecond)
	assert.Equal(t, StateRunning, f.x.State())
	f.clock.Advance(time.Millisecond)
	assert.Equal(t, StateFinished, f.x.State())
	assert.True(t, f.x.ToolOn())
}

func TestExecutor_ResumeRequiresHeld(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(instruction.NewDelay(1)))
	assert.ErrorIs(t, f.x.Resume(), ErrNotHeld)
}

func TestExecutor_DeadmanInManualMode(t *testing.T) {
	f := newExecutorFixture(t, ModeT2)
	f.x.Load(buildProgram(instruction.NewDelay(1)))

	assert.ErrorIs(t, f.x.Start(), ErrStartRefused)

	f.x.SetDeadman(true)
	require.NoError(t, f.x.Start())

	f.x.SetDeadman(false)
	assert.Equal(t, StateHeld, f.x.State())
}

func TestExecutor_DeadmanIgnoredInAuto(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(instruction.NewDelay(1)))
	require.NoError(t, f.x.Start())

	f.x.SetDeadman(false)
	assert.Equal(t, StateRunning, f.x.State())
}

func TestExecutor_SetModeStops(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(instruction.NewDelay(1)))
	require.NoError(t, f.x.Start())

	f.x.SetMode(ModeT1)
	assert.Equal(t, StateIdle, f.x.State())
	assert.Zero(t, f.clock.Pending())
}

func TestExecutor_WaitsForDigitalInput(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	f.x.Load(buildProgram(
		instruction.NewDigitalIn(3, true),
		instruction.NewUseTool(instruction.ToolOn),
	))
	require.NoError(t, f.x.Start())

	f.clock.Advance(time.Second)
	assert.Equal(t, StateRunning, f.x.State())
	assert.Equal(t, 0, f.x.Line())

	require.NoError(t, f.bank.Set(3, true))
	f.clock.Advance(InputPollInterval)
	assert.Equal(t, StateFinished, f.x.State())
	assert.True(t, f.x.ToolOn())
}

func TestExecutor_IfElseBranches(t *testing.T) {
	tests := []struct {
		name  string
		input bool
		want  bool
	}{
		{"if branch", true, true},
		{"else branch", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExecutorFixture(t, ModeAuto)
			require.NoError(t, f.bank.Set(0, tt.input))
			f.x.Load(buildProgram(
				instruction.NewUseTool(instruction.ToolOff),
				instruction.NewIf(instruction.LineIf, 0, true, true),
				instruction.NewUseTool(instruction.ToolOn),
				instruction.NewIf(instruction.LineElse, 0, true, true),
				instruction.NewUseTool(instruction.ToolOff),
				instruction.NewIf(instruction.LineEndIf, 0, true, true),
			))

			require.NoError(t, f.x.Start())
			assert.Equal(t, StateFinished, f.x.State())
			assert.Equal(t, tt.want, f.x.ToolOn())
		})
	}
}

func TestExecutor_StateChangeNotifications(t *testing.T) {
	f := newExecutorFixture(t, ModeAuto)
	var states []RunState
	f.x.OnStateChange(func(s RunState, _ int) { states = append(states, s) })

	f.x.Load(buildProgram(instruction.NewUseTool(instruction.ToolOn)))
	require.NoError(t, f.x.Start())

	assert.Equal(t, []RunState{StateIdle, StateRunning, StateFinished}, states)
}
