package instruction

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownWireType возвращается при чтении инструкции с неизвестным кодом "type".
var ErrUnknownWireType = errors.New("unknown instruction wire type")

// ErrInvalidWireValue возвращается, если перечислимое поле инструкции вне допустимых значений.
var ErrInvalidWireValue = errors.New("invalid instruction wire value")

// Таблица проводных кодов. Значения зафиксированы форматом сохраненных файлов.
var wireTable = []struct {
	kind Kind
	code int
}{
	{KindText, 0},
	{KindMove, 1},
	{KindDelay, 2},
	{KindUseTool, 3},
	{KindEmpty, 4},
	{KindDigitalIn, 5},
	{KindIfBlock, 6},
}

// WireCode возвращает целочисленный дискриминант варианта.
func WireCode(k Kind) (int, bool) {
	for _, e := range wireTable {
		if e.kind == k {
			return e.code, true
		}
	}
	return 0, false
}

// KindFromWire возвращает вариант по дискриминанту.
func KindFromWire(code int) (Kind, bool) {
	for _, e := range wireTable {
		if e.code == code {
			return e.kind, true
		}
	}
	return "", false
}

type wireHeader struct {
	Type        int  `json:"type"`
	IsCommented bool `json:"isCommented"`
}

type moveWire struct {
	wireHeader
	MovementType        MovementType `json:"movementType"`
	Speed               float64      `json:"speed"`
	ApproximationAmount int          `json:"approximationAmount"`
	PointNumber         int          `json:"pointNumber"`
}

type delayWire struct {
	wireHeader
	DelayTime float64 `json:"delayTime"`
}

type useToolWire struct {
	wireHeader
	ActionType ToolAction `json:"actionType"`
}

type digitalInWire struct {
	wireHeader
	BitIndex    uint `json:"bitIndex"`
	TargetState bool `json:"targetState"`
}

type ifBlockWire struct {
	wireHeader
	LineType           LineType `json:"lineType"`
	DigitalInIndex     uint     `json:"digitalInIndex"`
	IsComparingAsEqual bool     `json:"isComparingAsEqual"`
	ComparisonValue    bool     `json:"comparisonValue"`
}

type textWire struct {
	wireHeader
	Text string `json:"text"`
}

// MarshalJSON кодирует инструкцию с явным дискриминантом "type".
func (i *Instruction) MarshalJSON() ([]byte, error) {
	code, ok := WireCode(i.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWireType, i.Kind())
	}
	h := wireHeader{Type: code, IsCommented: i.IsCommented()}

	switch b := i.body.(type) {
	case *Move:
		return json.Marshal(moveWire{h, b.MovementType, b.Speed, b.ApproximationAmount, b.PointNumber})
	case *Delay:
		return json.Marshal(delayWire{h, b.Seconds()})
	case *UseTool:
		return json.Marshal(useToolWire{h, b.ActionType})
	case *DigitalIn:
		return json.Marshal(digitalInWire{h, b.BitIndex, b.TargetState})
	case *IfBlock:
		return json.Marshal(ifBlockWire{h, b.LineType, b.DigitalInIndex, b.IsComparingAsEqual, b.ComparisonValue})
	case *Text:
		return json.Marshal(textWire{h, b.Text})
	default:
		return json.Marshal(h)
	}
}

// UnmarshalJSON восстанавливает вариант по полю "type".
func (i *Instruction) UnmarshalJSON(data []byte) error {
	var h wireHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	kind, ok := KindFromWire(h.Type)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownWireType, h.Type)
	}

	var body Body
	switch kind {
	case KindMove:
		var w moveWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.MovementType != MovementLinear && w.MovementType != MovementJoint {
			return fmt.Errorf("%w: movementType %d", ErrInvalidWireValue, w.MovementType)
		}
		m := &Move{MovementType: w.MovementType, ApproximationAmount: clampInt(w.ApproximationAmount, 0, MaxApproximation), PointNumber: w.PointNumber}
		m.Speed = w.Speed
		if m.Speed < 0 || m.Speed > SpeedScale {
			m.SetSpeedNormalized(w.Speed / SpeedScale)
		}
		body = m
	case KindDelay:
		var w delayWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		d := &Delay{}
		d.SetSeconds(w.DelayTime)
		body = d
	case KindUseTool:
		var w useToolWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.ActionType != ToolOn && w.ActionType != ToolOff {
			return fmt.Errorf("%w: actionType %d", ErrInvalidWireValue, w.ActionType)
		}
		body = &UseTool{ActionType: w.ActionType}
	case KindDigitalIn:
		var w digitalInWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		body = &DigitalIn{BitIndex: w.BitIndex, TargetState: w.TargetState}
	case KindIfBlock:
		var w ifBlockWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.LineType < LineIf || w.LineType > LineEndIf {
			return fmt.Errorf("%w: lineType %d", ErrInvalidWireValue, w.LineType)
		}
		body = &IfBlock{LineType: w.LineType, DigitalInIndex: w.DigitalInIndex, IsComparingAsEqual: w.IsComparingAsEqual, ComparisonValue: w.ComparisonValue}
	case KindText:
		var w textWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		body = &Text{Text: w.Text}
	default:
		body = &Empty{}
	}

	*i = Instruction{body: body}
	i.SetCommented(h.IsCommented)
	return nil
}
