// Package program содержит программу робота: упорядоченные инструкции и сохраненные точки.
package program

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
)

var (
	ErrIndexOutOfRange = errors.New("instruction index out of range")
	ErrPointOutOfRange = errors.New("point index out of range")
)

// Position - куда вставлять строку относительно выбранной.
type Position int

const (
	Above Position = iota
	Under
)

// Program - программа пульта. Один и тот же указатель инструкции может встречаться дважды.
type Program struct {
	Name        string
	Description string

	instructions []*instruction.Instruction
	points       []Point
}

// New создает программу из одной пустой строки.
func New(name, description string) *Program {
	return &Program{
		Name:         name,
		Description:  description,
		instructions: []*instruction.Instruction{instruction.NewEmpty()},
	}
}

func (p *Program) Len() int { return len(p.instructions) }

// Instructions возвращает копию списка строк (сами инструкции общие).
func (p *Program) Instructions() []*instruction.Instruction {
	return append([]*instruction.Instruction(nil), p.instructions...)
}

func (p *Program) At(index int) (*instruction.Instruction, error) {
	if index < 0 || index >= len(p.instructions) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return p.instructions[index], nil
}

// SavedPointCount ограничивает номера точек в MOVE.
func (p *Program) SavedPointCount() int { return len(p.points) }

func (p *Program) Points() []Point {
	if len(p.points) == 0 {
		return nil
	}
	out := make([]Point, len(p.points))
	for i, pt := range p.points {
		out[i] = pt.Clone()
	}
	return out
}

func (p *Program) Point(n int) (Point, error) {
	if n < 0 || n >= len(p.points) {
		return Point{}, fmt.Errorf("%w: %d", ErrPointOutOfRange, n)
	}
	return p.points[n].Clone(), nil
}

// AllocatePoint добавляет точку в конец списка и возвращает ее номер.
// Номера не переиспользуются, даже если MOVE, владевший точкой, удален.
func (p *Program) AllocatePoint(pt Point) int {
	p.points = append(p.points, pt.Clone())
	return len(p.points) - 1
}

// TouchUp перезаписывает существующую точку текущей позой.
func (p *Program) TouchUp(n int, pose Point) error {
	if n < 0 || n >= len(p.points) {
		return fmt.Errorf("%w: %d", ErrPointOutOfRange, n)
	}
	p.points[n] = pose.Clone()
	return nil
}

func (p *Program) allocateFor(inst *instruction.Instruction) {
	if m := inst.Move(); m != nil {
		m.PointNumber = p.AllocatePoint(NewPoint(mgl64.Vec3{}, mgl64.Vec3{}))
	}
}

// AddInstruction добавляет строку в конец. Завершающая пустая строка замещается.
func (p *Program) AddInstruction(inst *instruction.Instruction) int {
	p.allocateFor(inst)
	defer p.reindent()

	last := len(p.instructions) - 1
	if last >= 0 && p.instructions[last].IsEmpty() && !inst.IsEmpty() {
		p.instructions[last] = inst
		return last
	}
	p.instructions = append(p.instructions, inst)
	return len(p.instructions) - 1
}

// InsertInstruction вставляет строку над или под строкой index.
// Непустая строка, вставляемая на место пустой, замещает ее и не удлиняет программу.
func (p *Program) InsertInstruction(inst *instruction.Instruction, index int, where Position) (int, error) {
	if index < 0 || index >= len(p.instructions) {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	p.allocateFor(inst)
	defer p.reindent()

	if p.instructions[index].IsEmpty() && !inst.IsEmpty() {
		p.instructions[index] = inst
		return index, nil
	}

	at := index
	if where == Under {
		at = index + 1
	}
	p.instructions = append(p.instructions, nil)
	copy(p.instructions[at+1:], p.instructions[at:])
	p.instructions[at] = inst
	return at, nil
}

// RemoveInstruction удаляет строку. Последняя строка заменяется пустой.
func (p *Program) RemoveInstruction(index int) error {
	if index < 0 || index >= len(p.instructions) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	p.instructions = append(p.instructions[:index], p.instructions[index+1:]...)
	if len(p.instructions) == 0 {
		p.instructions = []*instruction.Instruction{instruction.NewEmpty()}
	}
	p.reindent()
	return nil
}

// ReplaceInstruction ставит inst на место строки index без выделения точек.
func (p *Program) ReplaceInstruction(index int, inst *instruction.Instruction) error {
	if index < 0 || index >= len(p.instructions) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	p.instructions[index] = inst
	p.reindent()
	return nil
}

// Reindent пересчитывает уровни отступа по маркерам IF/ELSE/END IF.
func (p *Program) Reindent() { p.reindent() }

func (p *Program) reindent() {
	level := 0
	for _, inst := range p.instructions {
		switch inst.LineIndentationEffect() {
		case instruction.IndentBlockOpener:
			inst.SetIndentationLevel(level)
			level++
		case instruction.IndentBlockIntersector:
			inst.SetIndentationLevel(level - 1)
		case instruction.IndentBlockEnder:
			if level > 0 {
				level--
			}
			inst.SetIndentationLevel(level)
		default:
			inst.SetIndentationLevel(level)
		}
	}
}

// Clone делает глубокую копию. Повторяющиеся указатели остаются общими внутри копии.
func (p *Program) Clone() *Program {
	c := &Program{Name: p.Name, Description: p.Description}
	seen := make(map[*instruction.Instruction]*instruction.Instruction, len(p.instructions))
	c.instructions = make([]*instruction.Instruction, len(p.instructions))
	for i, inst := range p.instructions {
		cl, ok := seen[inst]
		if !ok {
			cl = inst.Clone()
			seen[inst] = cl
		}
		c.instructions[i] = cl
	}
	c.points = p.Points()
	return c
}
