package instruction

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// SpeedScale - верхняя граница сырого значения скорости (100% от максимума).
	SpeedScale          = 100
	DefaultSpeedPercent = 50
	MaxApproximation    = 100
	// MaxDelayCentis - 99.99 секунды в сотых долях.
	MaxDelayCentis = 9999
)

// MovementType - вид интерполяции движения.
type MovementType int

const (
	MovementLinear MovementType = iota
	MovementJoint
)

func (t MovementType) String() string {
	if t == MovementLinear {
		return "L"
	}
	return "J"
}

// ToolAction - действие инструмента.
type ToolAction int

const (
	ToolOn ToolAction = iota
	ToolOff
)

// LineType - вид строки условного блока.
type LineType int

const (
	LineIf LineType = iota
	LineElseIf
	LineElse
	LineEndIf
)

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

// --- MOVE ---

// Move - перемещение к сохраненной точке программы.
type Move struct {
	MovementType        MovementType
	Speed               float64 // сырое значение в [0, SpeedScale]
	ApproximationAmount int
	PointNumber         int
}

// NewMove создает MOVE. Номер точки назначает программа при вставке.
func NewMove(t MovementType, speedPercent, approximation int) *Instruction {
	m := &Move{MovementType: t, ApproximationAmount: clampInt(approximation, 0, MaxApproximation)}
	m.SetSpeedPercent(speedPercent)
	return wrap(m)
}

func (m *Move) Kind() Kind { return KindMove }

// SpeedNormalized возвращает скорость в диапазоне 0..1.
func (m *Move) SpeedNormalized() float64 { return m.Speed / SpeedScale }

func (m *Move) SetSpeedNormalized(v float64) {
	m.Speed = math.Max(0, math.Min(1, v)) * SpeedScale
}

func (m *Move) SpeedPercent() int { return int(math.Round(m.Speed / SpeedScale * 100)) }

func (m *Move) SetSpeedPercent(p int) {
	m.Speed = float64(clampInt(p, 0, 100)) * SpeedScale / 100
}

func (m *Move) ToggleMovementType() {
	if m.MovementType == MovementJoint {
		m.MovementType = MovementLinear
	} else {
		m.MovementType = MovementJoint
	}
}

func (m *Move) layout() []segment {
	return []segment{
		field(1, m.MovementType.String()),
		lit("  P["),
		field(2, strconv.Itoa(m.PointNumber)),
		lit("] SPD "),
		field(3, strconv.Itoa(m.SpeedPercent())),
		lit("%  APX "),
		field(4, strconv.Itoa(m.ApproximationAmount)),
	}
}

func (m *Move) maxPart() int                    { return 4 }
func (m *Move) indentEffect() IndentationEffect { return IndentNone }

func (m *Move) input(part int, token string, st *editState, lim Limits) {
	switch part {
	case 0, 1:
		if token == TokenEnter {
			m.ToggleMovementType()
		}
	case 2:
		m.PointNumber = accumulate(m.PointNumber, token, st, savedPoints(lim)-1)
	case 3:
		m.SetSpeedPercent(accumulate(m.SpeedPercent(), token, st, SpeedScale))
	case 4:
		m.ApproximationAmount = accumulate(m.ApproximationAmount, token, st, MaxApproximation)
	}
}

func (m *Move) clone() Body {
	c := *m
	return &c
}

// --- DELAY ---

// Delay - ожидание. Время хранится в сотых долях секунды.
type Delay struct {
	Centis int
}

func NewDelay(seconds float64) *Instruction {
	d := &Delay{}
	d.SetSeconds(seconds)
	return wrap(d)
}

func (d *Delay) Kind() Kind { return KindDelay }

func (d *Delay) Seconds() float64 { return float64(d.Centis) / 100 }

func (d *Delay) SetSeconds(s float64) {
	d.Centis = clampInt(int(math.Round(s*100)), 0, MaxDelayCentis)
}

func (d *Delay) layout() []segment {
	return []segment{
		lit("WAIT "),
		field(1, fmt.Sprintf("%.2f", d.Seconds())),
		lit("(sec)"),
	}
}

func (d *Delay) maxPart() int                    { return 1 }
func (d *Delay) indentEffect() IndentationEffect { return IndentNone }

func (d *Delay) input(part int, token string, st *editState, _ Limits) {
	if part != 1 {
		return
	}
	whole, frac := d.Centis/100, d.Centis%100

	switch token {
	case TokenDot:
		// Переход к десятым возможен только от целого значения.
		if frac == 0 {
			st.decimalMode = true
			st.decimalDigits = 0
			st.fresh = false
		}
		return
	case TokenPrev:
		st.fresh = false
		switch {
		case frac%10 != 0:
			d.Centis -= frac % 10
			st.decimalDigits = 1
		case frac != 0:
			d.Centis -= frac
			st.decimalDigits = 0
		case st.decimalMode:
			st.decimalMode = false
		default:
			d.Centis = (whole / 10) * 100
		}
		return
	}

	n, ok := digit(token)
	if !ok {
		return
	}
	switch {
	case st.fresh:
		d.Centis = n * 100
		st.fresh = false
		st.decimalMode = false
	case st.decimalMode:
		switch st.decimalDigits {
		case 0:
			d.Centis = whole*100 + n*10
			st.decimalDigits = 1
		case 1:
			d.Centis = whole*100 + (frac/10)*10 + n
			st.decimalDigits = 2
		}
	default:
		d.Centis = (whole*10+n)*100 + frac
	}
	d.Centis = clampInt(d.Centis, 0, MaxDelayCentis)
}

func (d *Delay) clone() Body {
	c := *d
	return &c
}

// --- USE_TOOL ---

type UseTool struct {
	ActionType ToolAction
}

func NewUseTool(a ToolAction) *Instruction { return wrap(&UseTool{ActionType: a}) }

func (u *UseTool) Kind() Kind { return KindUseTool }

func (u *UseTool) Toggle() {
	if u.ActionType == ToolOn {
		u.ActionType = ToolOff
	} else {
		u.ActionType = ToolOn
	}
}

func (u *UseTool) layout() []segment {
	return []segment{lit("TOOL "), field(1, onOff(u.ActionType == ToolOn))}
}

func (u *UseTool) maxPart() int                    { return 1 }
func (u *UseTool) indentEffect() IndentationEffect { return IndentNone }

func (u *UseTool) input(part int, token string, _ *editState, _ Limits) {
	if (part == 0 || part == 1) && token == TokenEnter {
		u.Toggle()
	}
}

func (u *UseTool) clone() Body {
	c := *u
	return &c
}

// --- DIGITAL_IN ---

// DigitalIn - ожидание заданного состояния цифрового входа.
type DigitalIn struct {
	BitIndex    uint
	TargetState bool
}

func NewDigitalIn(bit uint, target bool) *Instruction {
	return wrap(&DigitalIn{BitIndex: bit, TargetState: target})
}

func (d *DigitalIn) Kind() Kind { return KindDigitalIn }

func (d *DigitalIn) layout() []segment {
	return []segment{
		lit("WAIT DI["),
		field(1, strconv.FormatUint(uint64(d.BitIndex), 10)),
		lit("]="),
		field(2, onOff(d.TargetState)),
	}
}

func (d *DigitalIn) maxPart() int                    { return 2 }
func (d *DigitalIn) indentEffect() IndentationEffect { return IndentNone }

func (d *DigitalIn) input(part int, token string, st *editState, lim Limits) {
	switch part {
	case 1:
		d.BitIndex = uint(accumulate(int(d.BitIndex), token, st, digitalInputs(lim)-1))
	case 2:
		if token == TokenEnter {
			d.TargetState = !d.TargetState
		}
	}
}

func (d *DigitalIn) clone() Body {
	c := *d
	return &c
}

// --- IF_BLOCK ---

// IfBlock - строка условного блока по состоянию цифрового входа.
type IfBlock struct {
	LineType           LineType
	DigitalInIndex     uint
	IsComparingAsEqual bool
	ComparisonValue    bool
}

func NewIf(t LineType, di uint, equal, value bool) *Instruction {
	return wrap(&IfBlock{LineType: t, DigitalInIndex: di, IsComparingAsEqual: equal, ComparisonValue: value})
}

func (b *IfBlock) Kind() Kind { return KindIfBlock }

// HasCondition сообщает, проверяет ли строка условие (IF и ELSE IF).
func (b *IfBlock) HasCondition() bool {
	return b.LineType == LineIf || b.LineType == LineElseIf
}

// Evaluate проверяет условие по состоянию входа.
func (b *IfBlock) Evaluate(state bool) bool {
	if b.IsComparingAsEqual {
		return state == b.ComparisonValue
	}
	return state != b.ComparisonValue
}

func (b *IfBlock) layout() []segment {
	switch b.LineType {
	case LineElse:
		return []segment{lit("ELSE")}
	case LineEndIf:
		return []segment{lit("END IF")}
	}
	head := "IF DI["
	if b.LineType == LineElseIf {
		head = "ELSE IF DI["
	}
	op := "="
	if !b.IsComparingAsEqual {
		op = "<>"
	}
	return []segment{
		lit(head),
		field(1, strconv.FormatUint(uint64(b.DigitalInIndex), 10)),
		lit("]"),
		field(2, op),
		field(3, onOff(b.ComparisonValue)),
	}
}

func (b *IfBlock) maxPart() int {
	if b.HasCondition() {
		return 3
	}
	return 0
}

func (b *IfBlock) indentEffect() IndentationEffect {
	switch b.LineType {
	case LineIf:
		return IndentBlockOpener
	case LineElseIf, LineElse:
		return IndentBlockIntersector
	default:
		return IndentBlockEnder
	}
}

func (b *IfBlock) input(part int, token string, st *editState, lim Limits) {
	if !b.HasCondition() {
		return
	}
	switch part {
	case 0, 2:
		if token == TokenEnter {
			b.IsComparingAsEqual = !b.IsComparingAsEqual
		}
	case 1:
		b.DigitalInIndex = uint(accumulate(int(b.DigitalInIndex), token, st, digitalInputs(lim)-1))
	case 3:
		if token == TokenEnter {
			b.ComparisonValue = !b.ComparisonValue
		}
	}
}

func (b *IfBlock) clone() Body {
	c := *b
	return &c
}

// --- TEXT ---

type Text struct {
	Text string
}

func NewText(text string) *Instruction { return wrap(&Text{Text: text}) }

func (t *Text) Kind() Kind                      { return KindText }
func (t *Text) layout() []segment               { return []segment{lit(t.Text)} }
func (t *Text) maxPart() int                    { return 0 }
func (t *Text) indentEffect() IndentationEffect { return IndentNone }
func (t *Text) input(int, string, *editState, Limits) {}

func (t *Text) clone() Body {
	c := *t
	return &c
}

// --- EMPTY ---

// Empty - строка-заполнитель, которая держит программу непустой.
type Empty struct{}

func NewEmpty() *Instruction { return wrap(&Empty{}) }

func (e *Empty) Kind() Kind                      { return KindEmpty }
func (e *Empty) layout() []segment               { return []segment{lit("[End]")} }
func (e *Empty) maxPart() int                    { return 0 }
func (e *Empty) indentEffect() IndentationEffect { return IndentNone }
func (e *Empty) input(int, string, *editState, Limits) {}
func (e *Empty) clone() Body                     { return &Empty{} }
