package instruction

import (
	"strings"
)

// Kind определяет вариант строки программы.
type Kind string

const (
	KindText      Kind = "TEXT"
	KindMove      Kind = "MOVE"
	KindDelay     Kind = "DELAY"
	KindUseTool   Kind = "USE_TOOL"
	KindEmpty     Kind = "EMPTY"
	KindDigitalIn Kind = "DIGITAL_IN"
	KindIfBlock   Kind = "IF_BLOCK"
)

// Kinds перечисляет все варианты в порядке их проводных кодов.
var Kinds = []Kind{KindText, KindMove, KindDelay, KindUseTool, KindEmpty, KindDigitalIn, KindIfBlock}

// IndentationEffect описывает влияние строки на вложенность блоков IF/ELSE/END IF.
type IndentationEffect int

const (
	IndentNone IndentationEffect = iota
	IndentBlockOpener
	IndentBlockEnder
	IndentBlockIntersector
)

// Limits - внешние ограничения, которые ядро читает, но не владеет ими.
type Limits interface {
	SavedPointCount() int
	DigitalInputCount() int
}

// Body - полезная нагрузка конкретного варианта инструкции.
type Body interface {
	Kind() Kind
	layout() []segment
	maxPart() int
	indentEffect() IndentationEffect
	input(part int, token string, st *editState, lim Limits)
	clone() Body
}

type editState struct {
	fresh         bool // следующая цифра заменяет значение поля
	decimalMode   bool
	decimalDigits int
}

// Instruction - одна строка программы пульта.
type Instruction struct {
	body        Body
	commented   bool
	indentation int
	selected    int
	edit        editState
}

// New создает инструкцию варианта kind со значениями по умолчанию.
func New(kind Kind) *Instruction {
	switch kind {
	case KindText:
		return NewText("")
	case KindMove:
		return NewMove(MovementJoint, DefaultSpeedPercent, 0)
	case KindDelay:
		return NewDelay(0)
	case KindUseTool:
		return NewUseTool(ToolOn)
	case KindDigitalIn:
		return NewDigitalIn(0, true)
	case KindIfBlock:
		return NewIf(LineIf, 0, true, true)
	default:
		return NewEmpty()
	}
}

func wrap(body Body) *Instruction {
	return &Instruction{body: body}
}

// Clone возвращает глубокую копию без общих изменяемых данных.
func (i *Instruction) Clone() *Instruction {
	c := *i
	c.body = i.body.clone()
	return &c
}

func (i *Instruction) Kind() Kind { return i.body.Kind() }
func (i *Instruction) Body() Body { return i.body }

func (i *Instruction) IsEmpty() bool { return i.body.Kind() == KindEmpty }

// IsCommented сообщает, закомментирована ли строка. TEXT всегда комментарий.
func (i *Instruction) IsCommented() bool {
	if i.body.Kind() == KindText {
		return true
	}
	return i.commented
}

// SetCommented меняет признак комментария. Для EMPTY и TEXT не действует.
func (i *Instruction) SetCommented(v bool) {
	switch i.body.Kind() {
	case KindEmpty, KindText:
		return
	}
	i.commented = v
}

func (i *Instruction) MaxSelectablePartIndex() int { return i.body.maxPart() }

func (i *Instruction) LineIndentationEffect() IndentationEffect { return i.body.indentEffect() }

func (i *Instruction) IndentationLevel() int { return i.indentation }

func (i *Instruction) SetIndentationLevel(level int) {
	if level < 0 {
		level = 0
	}
	i.indentation = level
}

func (i *Instruction) SelectedPart() int { return i.selected }

// Move возвращает полезную нагрузку MOVE или nil.
func (i *Instruction) Move() *Move {
	m, _ := i.body.(*Move)
	return m
}

func (i *Instruction) Delay() *Delay {
	d, _ := i.body.(*Delay)
	return d
}

func (i *Instruction) UseTool() *UseTool {
	u, _ := i.body.(*UseTool)
	return u
}

func (i *Instruction) DigitalIn() *DigitalIn {
	d, _ := i.body.(*DigitalIn)
	return d
}

func (i *Instruction) IfBlock() *IfBlock {
	b, _ := i.body.(*IfBlock)
	return b
}

func (i *Instruction) TextBody() *Text {
	t, _ := i.body.(*Text)
	return t
}

// Text возвращает однострочное представление инструкции.
func (i *Instruction) Text() string {
	var b strings.Builder
	b.WriteString(i.prefix())
	for _, s := range i.body.layout() {
		b.WriteString(s.text)
	}
	return b.String()
}

func (i *Instruction) String() string { return i.Text() }

func (i *Instruction) prefix() string {
	p := strings.Repeat(indentUnit, i.indentation)
	if i.IsCommented() {
		p = "!" + p
	}
	return p
}
