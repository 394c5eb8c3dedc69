package pendant_service

import (
	"errors"
	"fmt"

	"github.com/iwtcode/pendantService/internal/domain/dio"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/program"
)

var ErrNoProgramOpen = errors.New("no program is open in the editor")

// editorLimits связывает ограничения ввода с открытой программой и банком входов.
type editorLimits struct {
	program *program.Program
	bank    *dio.Bank
}

func (l editorLimits) SavedPointCount() int   { return l.program.SavedPointCount() }
func (l editorLimits) DigitalInputCount() int { return l.bank.Count() }

// Editor - построчный редактор пульта: курсор по строкам и полям открытой программы.
type Editor struct {
	bank *dio.Bank
	pose func() program.Point

	program *program.Program
	line    int
	part    int
}

// NewEditor создает редактор. pose возвращает текущую позу робота для записи точек.
func NewEditor(bank *dio.Bank, pose func() program.Point) *Editor {
	return &Editor{bank: bank, pose: pose}
}

func (e *Editor) Open(p *program.Program) {
	e.program = p
	e.line = 0
	e.enterField(0)
}

func (e *Editor) Close() { e.program = nil }

func (e *Editor) Program() *program.Program { return e.program }

// IsOpen сообщает, открыта ли программа name.
func (e *Editor) IsOpen(name string) bool {
	return e.program != nil && e.program.Name == name
}

func (e *Editor) Line() int { return e.line }
func (e *Editor) Part() int { return e.part }

func (e *Editor) limits() instruction.Limits {
	return editorLimits{program: e.program, bank: e.bank}
}

func (e *Editor) current() (*instruction.Instruction, error) {
	if e.program == nil {
		return nil, ErrNoProgramOpen
	}
	return e.program.At(e.line)
}

// enterField ставит курсор на поле part текущей строки и начинает новый ввод.
func (e *Editor) enterField(part int) {
	inst, err := e.current()
	if err != nil {
		e.part = 0
		return
	}
	inst.SelectPart(part)
	e.part = inst.SelectedPart()
	inst.BeginFieldEdit()
}

func (e *Editor) Goto(line int) error {
	if e.program == nil {
		return ErrNoProgramOpen
	}
	if line < 0 || line >= e.program.Len() {
		return fmt.Errorf("%w: %d", program.ErrIndexOutOfRange, line)
	}
	e.line = line
	e.enterField(0)
	return nil
}

// Step сдвигает курсор на delta строк с упором в границы программы.
func (e *Editor) Step(delta int) error {
	if e.program == nil {
		return ErrNoProgramOpen
	}
	line := e.line + delta
	if line < 0 {
		line = 0
	}
	if line >= e.program.Len() {
		line = e.program.Len() - 1
	}
	e.line = line
	e.enterField(0)
	return nil
}

func (e *Editor) SelectPart(part int) error {
	if _, err := e.current(); err != nil {
		return err
	}
	e.enterField(part)
	return nil
}

func (e *Editor) NextPart() error { return e.SelectPart(e.part + 1) }

func (e *Editor) PrevPart() error {
	if e.part == 0 {
		return e.SelectPart(0)
	}
	return e.SelectPart(e.part - 1)
}

// Input передает токен клавиатуры выбранному полю.
func (e *Editor) Input(token string) error {
	inst, err := e.current()
	if err != nil {
		return err
	}
	inst.ProcessInput(token, e.limits())
	if inst.LineIndentationEffect() != instruction.IndentNone {
		e.program.Reindent()
	}
	return nil
}

// Insert вставляет строку вида kind над или под курсором. Для MOVE точка записывается текущей позой.
func (e *Editor) Insert(kind instruction.Kind, where program.Position) error {
	if e.program == nil {
		return ErrNoProgramOpen
	}
	inst := instruction.New(kind)
	at, err := e.program.InsertInstruction(inst, e.line, where)
	if err != nil {
		return err
	}
	if m := inst.Move(); m != nil && e.pose != nil {
		if err := e.program.TouchUp(m.PointNumber, e.pose()); err != nil {
			return err
		}
	}
	e.line = at
	e.enterField(0)
	return nil
}

func (e *Editor) Delete() error {
	if e.program == nil {
		return ErrNoProgramOpen
	}
	if err := e.program.RemoveInstruction(e.line); err != nil {
		return err
	}
	if e.line >= e.program.Len() {
		e.line = e.program.Len() - 1
	}
	e.enterField(0)
	return nil
}

// ChangeKind заменяет строку под курсором новой строкой вида kind.
func (e *Editor) ChangeKind(kind instruction.Kind) error {
	old, err := e.current()
	if err != nil {
		return err
	}
	if old.Kind() == kind {
		return nil
	}
	inst := instruction.New(kind)
	inst.SetCommented(old.IsCommented() && old.Kind() != instruction.KindText)
	if m := inst.Move(); m != nil {
		pose := program.Point{}
		if e.pose != nil {
			pose = e.pose()
		}
		m.PointNumber = e.program.AllocatePoint(pose)
	}
	if err := e.program.ReplaceInstruction(e.line, inst); err != nil {
		return err
	}
	e.enterField(0)
	return nil
}

func (e *Editor) ToggleComment() error {
	inst, err := e.current()
	if err != nil {
		return err
	}
	inst.SetCommented(!inst.IsCommented())
	return nil
}

// SetText задает текст комментария. Строка, не являющаяся TEXT, заменяется комментарием.
func (e *Editor) SetText(text string) error {
	inst, err := e.current()
	if err != nil {
		return err
	}
	if t := inst.TextBody(); t != nil {
		t.Text = text
		return nil
	}
	if err := e.program.ReplaceInstruction(e.line, instruction.NewText(text)); err != nil {
		return err
	}
	e.enterField(0)
	return nil
}

// TouchUp перезаписывает точку MOVE под курсором текущей позой робота.
func (e *Editor) TouchUp() error {
	inst, err := e.current()
	if err != nil {
		return err
	}
	m := inst.Move()
	if m == nil {
		return fmt.Errorf("line %d is %s, not a move", e.line, inst.Kind())
	}
	if e.pose == nil {
		return errors.New("robot pose is not available")
	}
	return e.program.TouchUp(m.PointNumber, e.pose())
}

// Highlight возвращает текст строки под курсором и диапазон выбранного поля.
func (e *Editor) Highlight() (text string, start, end int, err error) {
	inst, err := e.current()
	if err != nil {
		return "", 0, 0, err
	}
	start, end = inst.PartRange(e.part)
	return inst.Text(), start, end, nil
}
