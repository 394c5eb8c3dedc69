package pendant_service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/dio"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/interlock"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/iwtcode/pendantService/internal/domain/simclock"
)

var (
	ErrStartRefused    = errors.New("program start refused")
	ErrNoProgramLoaded = errors.New("no program loaded for execution")
	ErrNotHeld         = errors.New("program is not held")
	ErrUnknownMode     = errors.New("unknown movement mode")
)

// MovementMode - режим работы контроллера.
type MovementMode string

const (
	ModeT1   MovementMode = "T1"
	ModeT2   MovementMode = "T2"
	ModeAuto MovementMode = "AUTO"
)

func ParseMovementMode(s string) (MovementMode, error) {
	switch m := MovementMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeT1, ModeT2, ModeAuto:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// RunState - состояние исполнения.
type RunState string

const (
	StateIdle     RunState = "idle"
	StateRunning  RunState = "running"
	StateHeld     RunState = "held"
	StateFinished RunState = "finished"
)

const (
	// MaxCartesianSpeed - скорость перемещения при 100% в единицах сцены в секунду.
	MaxCartesianSpeed = 1.0
	// T1SpeedLimit - ограничение скорости в режиме T1 (доля от максимальной).
	T1SpeedLimit = 0.25
	// MinMoveDuration - минимальная длительность перемещения, даже нулевой длины.
	MinMoveDuration = 100 * time.Millisecond
	// InputPollInterval - период перепроверки ожидаемого цифрового входа.
	InputPollInterval = 50 * time.Millisecond
)

type motion struct {
	from, to      program.Point
	start, finish time.Duration
}

// Executor исполняет загруженную программу в симуляционном времени.
// Все методы вызываются из главного цикла.
type Executor struct {
	clock     *simclock.Scheduler
	requester *interlock.Requester
	bank      *dio.Bank

	program *program.Program
	mode    MovementMode
	deadman bool
	state   RunState
	pc      int
	toolOn  bool
	pose    program.Point
	motion  *motion
	wait    simclock.Handle

	listeners []func(RunState, int)
}

func NewExecutor(clock *simclock.Scheduler, requester *interlock.Requester, bank *dio.Bank, mode MovementMode) *Executor {
	x := &Executor{
		clock:     clock,
		requester: requester,
		bank:      bank,
		mode:      mode,
		state:     StateIdle,
		pose:      program.NewPoint(mgl64.Vec3{}, mgl64.Vec3{}),
	}
	requester.OnEvent(func(ev interlock.Event) {
		if ev.Status == interlock.Raised && x.state == StateRunning {
			x.Hold()
		}
	})
	return x
}

// OnStateChange подписывает fn на смену состояния или строки.
func (x *Executor) OnStateChange(fn func(RunState, int)) {
	x.listeners = append(x.listeners, fn)
}

func (x *Executor) notify() {
	for _, fn := range x.listeners {
		fn(x.state, x.pc)
	}
}

// Load загружает программу на исполнение. Исполнение текущей программы прекращается.
func (x *Executor) Load(p *program.Program) {
	x.Stop()
	x.program = p
	x.pc = 0
	x.state = StateIdle
	x.notify()
}

func (x *Executor) Program() *program.Program { return x.program }

// IsLoaded сообщает, загружена ли программа name.
func (x *Executor) IsLoaded(name string) bool {
	return x.program != nil && x.program.Name == name
}

func (x *Executor) IsRunning() bool    { return x.state == StateRunning }
func (x *Executor) State() RunState    { return x.state }
func (x *Executor) Line() int          { return x.pc }
func (x *Executor) Mode() MovementMode { return x.mode }
func (x *Executor) Deadman() bool      { return x.deadman }
func (x *Executor) ToolOn() bool       { return x.toolOn }

func (x *Executor) SimTime() time.Duration { return x.clock.Now() }

// Pose возвращает текущую позу робота с учетом выполняемого перемещения.
func (x *Executor) Pose() program.Point {
	if x.motion == nil {
		return x.pose.Clone()
	}
	span := x.motion.finish - x.motion.start
	t := 1.0
	if span > 0 {
		t = float64(x.clock.Now()-x.motion.start) / float64(span)
	}
	return x.motion.from.Interpolate(x.motion.to, t)
}

// SetPose задает позу робота (ручное перемещение вне программы).
func (x *Executor) SetPose(p program.Point) {
	if x.motion == nil {
		x.pose = p.Clone()
	}
}

// SetMode меняет режим. Смена режима прекращает исполнение.
func (x *Executor) SetMode(m MovementMode) {
	if m == x.mode {
		return
	}
	if x.state == StateRunning || x.state == StateHeld {
		x.Stop()
	}
	x.mode = m
	x.notify()
}

// SetDeadman задает состояние кнопки разрешения. Отпускание вне AUTO останавливает движение.
func (x *Executor) SetDeadman(held bool) {
	x.deadman = held
	if !held && x.mode != ModeAuto && x.state == StateRunning {
		x.Hold()
	}
}

func (x *Executor) checkStart() error {
	if x.program == nil {
		return ErrNoProgramLoaded
	}
	if !x.requester.CanRun() {
		return fmt.Errorf("%w: interlocks are not reset", ErrStartRefused)
	}
	if x.mode != ModeAuto && !x.deadman {
		return fmt.Errorf("%w: deadman switch is not held in %s", ErrStartRefused, x.mode)
	}
	return nil
}

// Start запускает программу с первой строки.
func (x *Executor) Start() error {
	if x.state == StateRunning {
		return nil
	}
	if err := x.checkStart(); err != nil {
		return err
	}
	x.cancelWait()
	x.pc = 0
	x.toolOn = false
	x.state = StateRunning
	x.notify()
	x.step()
	return nil
}

// Resume продолжает удержанную программу с прерванной строки.
func (x *Executor) Resume() error {
	if x.state != StateHeld {
		return ErrNotHeld
	}
	if err := x.checkStart(); err != nil {
		return err
	}
	x.state = StateRunning
	x.notify()
	x.step()
	return nil
}

// Hold прерывает исполнение с сохранением строки.
func (x *Executor) Hold() {
	if x.state != StateRunning {
		return
	}
	x.freeze()
	x.state = StateHeld
	x.notify()
}

func (x *Executor) Stop() {
	if x.state == StateIdle || x.state == StateFinished {
		return
	}
	x.freeze()
	x.pc = 0
	x.state = StateIdle
	x.notify()
}

// freeze останавливает робота в текущей позе и снимает ожидание.
func (x *Executor) freeze() {
	x.pose = x.Pose()
	x.motion = nil
	x.cancelWait()
}

func (x *Executor) cancelWait() {
	if x.wait != 0 {
		x.clock.Cancel(x.wait)
		x.wait = 0
	}
}

func (x *Executor) schedule(d time.Duration, fn func()) {
	x.wait = x.clock.After(d, func() {
		x.wait = 0
		if x.state == StateRunning {
			fn()
		}
	})
}

// step исполняет строки начиная с pc до первого ожидания.
func (x *Executor) step() {
	for x.state == StateRunning {
		if x.pc >= x.program.Len() {
			x.finish()
			return
		}
		inst, _ := x.program.At(x.pc)
		if inst.IsCommented() || inst.IsEmpty() {
			x.pc++
			continue
		}

		switch inst.Kind() {
		case instruction.KindMove:
			x.startMove(inst.Move())
			return
		case instruction.KindDelay:
			x.schedule(time.Duration(inst.Delay().Centis)*10*time.Millisecond, x.advance)
			return
		case instruction.KindUseTool:
			x.toolOn = inst.UseTool().ActionType == instruction.ToolOn
			x.pc++
		case instruction.KindDigitalIn:
			di := inst.DigitalIn()
			if x.bank.Get(di.BitIndex) != di.TargetState {
				x.schedule(InputPollInterval, x.step)
				return
			}
			x.pc++
		case instruction.KindIfBlock:
			x.pc = x.branch(x.pc)
		default:
			x.pc++
		}
	}
}

func (x *Executor) advance() {
	x.pc++
	x.notify()
	x.step()
}

func (x *Executor) finish() {
	x.state = StateFinished
	x.pc = 0
	x.notify()
}

func (x *Executor) speedFactor(m *instruction.Move) float64 {
	v := m.SpeedNormalized()
	if x.mode == ModeT1 && v > T1SpeedLimit {
		v = T1SpeedLimit
	}
	return v
}

func (x *Executor) startMove(m *instruction.Move) {
	target, err := x.program.Point(m.PointNumber)
	if err != nil {
		x.pc++
		x.step()
		return
	}
	from := x.Pose()
	d := MinMoveDuration
	if v := x.speedFactor(m); v > 0 {
		secs := from.Distance(target) / (MaxCartesianSpeed * v)
		if dd := time.Duration(secs * float64(time.Second)); dd > d {
			d = dd
		}
	}
	now := x.clock.Now()
	x.motion = &motion{from: from, to: target, start: now, finish: now + d}
	x.schedule(d, func() {
		x.pose = target.Clone()
		x.motion = nil
		x.advance()
	})
}

// branch вычисляет следующую строку после строки IF/ELSE IF/ELSE/END IF с индексом pc.
func (x *Executor) branch(pc int) int {
	inst, _ := x.program.At(pc)
	b := inst.IfBlock()
	switch b.LineType {
	case instruction.LineIf:
		return x.evaluate(pc)
	case instruction.LineElseIf, instruction.LineElse:
		// Сюда попадаем только после исполненной ветки: пропускаем остальные.
		return x.endOfBlock(pc) + 1
	default:
		return pc + 1
	}
}

// evaluate проверяет условие строки pc. При ложном условии переходит к следующей ветке.
func (x *Executor) evaluate(pc int) int {
	for {
		inst, _ := x.program.At(pc)
		b := inst.IfBlock()
		if !b.HasCondition() || b.Evaluate(x.bank.Get(b.DigitalInIndex)) {
			return pc + 1
		}
		next := x.nextBranch(pc)
		if next < 0 {
			return x.program.Len()
		}
		nb, _ := x.program.At(next)
		if nb.IfBlock().LineType == instruction.LineEndIf {
			return next + 1
		}
		pc = next
	}
}

// nextBranch ищет следующую строку ELSE IF/ELSE/END IF того же уровня вложенности.
func (x *Executor) nextBranch(pc int) int {
	depth := 0
	for i := pc + 1; i < x.program.Len(); i++ {
		inst, _ := x.program.At(i)
		if inst.IsCommented() || inst.Kind() != instruction.KindIfBlock {
			continue
		}
		switch inst.IfBlock().LineType {
		case instruction.LineIf:
			depth++
		case instruction.LineEndIf:
			if depth == 0 {
				return i
			}
			depth--
		default:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// endOfBlock возвращает индекс END IF, закрывающего блок строки pc, или последнюю строку.
func (x *Executor) endOfBlock(pc int) int {
	for i := pc; ; {
		next := x.nextBranch(i)
		if next < 0 {
			return x.program.Len() - 1
		}
		inst, _ := x.program.At(next)
		if inst.IfBlock().LineType == instruction.LineEndIf {
			return next
		}
		i = next
	}
}
