package program

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
)

type vec3Wire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type quatWire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

type pointWire struct {
	Position    vec3Wire   `json:"position"`
	Rotation    vec3Wire   `json:"rotation"`
	JointAngles []quatWire `json:"jointAngles"`
}

type programWire struct {
	Name         string                     `json:"Name"`
	Description  string                     `json:"Description"`
	Instructions []*instruction.Instruction `json:"Instructions"`
	SavedPoints  []Point                    `json:"SavedPoints"`
}

func toVec3Wire(v mgl64.Vec3) vec3Wire { return vec3Wire{v.X(), v.Y(), v.Z()} }

func (w vec3Wire) vec() mgl64.Vec3 { return mgl64.Vec3{w.X, w.Y, w.Z} }

func (p Point) MarshalJSON() ([]byte, error) {
	w := pointWire{
		Position:    toVec3Wire(p.Position),
		Rotation:    toVec3Wire(p.Rotation),
		JointAngles: make([]quatWire, len(p.JointAngles)),
	}
	for i, q := range p.JointAngles {
		w.JointAngles[i] = quatWire{X: q.V.X(), Y: q.V.Y(), Z: q.V.Z(), W: q.W}
	}
	return json.Marshal(w)
}

// UnmarshalJSON дополняет недостающие ориентации звеньев единичными.
func (p *Point) UnmarshalJSON(data []byte) error {
	var w pointWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = NewPoint(w.Position.vec(), w.Rotation.vec())
	for i, q := range w.JointAngles {
		quat := mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
		if i < len(p.JointAngles) {
			p.JointAngles[i] = quat
		} else {
			p.JointAngles = append(p.JointAngles, quat)
		}
	}
	return nil
}

func (p *Program) MarshalJSON() ([]byte, error) {
	points := p.points
	if points == nil {
		points = []Point{}
	}
	return json.Marshal(programWire{
		Name:         p.Name,
		Description:  p.Description,
		Instructions: p.instructions,
		SavedPoints:  points,
	})
}

// UnmarshalJSON восстанавливает программу и пересчитывает отступы.
func (p *Program) UnmarshalJSON(data []byte) error {
	var w programWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Program{Name: w.Name, Description: w.Description}
	for _, inst := range w.Instructions {
		if inst == nil {
			return fmt.Errorf("program %q: null instruction", w.Name)
		}
		p.instructions = append(p.instructions, inst)
	}
	if len(p.instructions) == 0 {
		p.instructions = []*instruction.Instruction{instruction.NewEmpty()}
	}
	if len(w.SavedPoints) > 0 {
		p.points = w.SavedPoints
	}
	p.reindent()
	return nil
}

// Marshal сериализует коллекцию сохраненных программ в один JSON-документ (массив).
func Marshal(programs []*Program) ([]byte, error) {
	if programs == nil {
		programs = []*Program{}
	}
	return json.MarshalIndent(programs, "", "  ")
}

// Unmarshal читает коллекцию программ из JSON-массива.
func Unmarshal(data []byte) ([]*Program, error) {
	var programs []*Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("failed to parse programs document: %w", err)
	}
	if err := CheckUniqueNames(programs); err != nil {
		return nil, fmt.Errorf("failed to parse programs document: %w", err)
	}
	return programs, nil
}
