package program

import (
	"github.com/go-gl/mathgl/mgl64"
)

// JointCount - число осей робота, для которых хранится ориентация в точке.
const JointCount = 6

// Point - сохраненная поза: позиция, углы Эйлера (в градусах) и ориентации звеньев.
// Ориентации звеньев разрешают неоднозначность между линейной и осевой интерполяцией.
type Point struct {
	Position    mgl64.Vec3
	Rotation    mgl64.Vec3
	JointAngles []mgl64.Quat
}

// NewPoint создает точку с единичными ориентациями звеньев.
func NewPoint(position, rotation mgl64.Vec3) Point {
	joints := make([]mgl64.Quat, JointCount)
	for i := range joints {
		joints[i] = mgl64.QuatIdent()
	}
	return Point{Position: position, Rotation: rotation, JointAngles: joints}
}

// Equal сравнивает только позицию и поворот, точным совпадением.
func (p Point) Equal(o Point) bool {
	return p.Position == o.Position && p.Rotation == o.Rotation
}

func (p Point) Clone() Point {
	c := p
	c.JointAngles = append([]mgl64.Quat(nil), p.JointAngles...)
	return c
}

// Orientation переводит углы Эйлера в кватернион (порядок ZYX).
func (p Point) Orientation() mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(p.Rotation.Z()),
		mgl64.DegToRad(p.Rotation.Y()),
		mgl64.DegToRad(p.Rotation.X()),
		mgl64.ZYX,
	)
}

// Interpolate возвращает промежуточную позу между p и target для доли t в [0, 1].
// Позиция интерполируется линейно, ориентации звеньев - сферически.
func (p Point) Interpolate(target Point, t float64) Point {
	if t <= 0 {
		return p.Clone()
	}
	if t >= 1 {
		return target.Clone()
	}
	out := Point{
		Position: p.Position.Add(target.Position.Sub(p.Position).Mul(t)),
		Rotation: p.Rotation.Add(target.Rotation.Sub(p.Rotation).Mul(t)),
	}
	n := len(target.JointAngles)
	out.JointAngles = make([]mgl64.Quat, n)
	for i := 0; i < n; i++ {
		from := mgl64.QuatIdent()
		if i < len(p.JointAngles) {
			from = p.JointAngles[i]
		}
		out.JointAngles[i] = mgl64.QuatSlerp(from, target.JointAngles[i], t)
	}
	return out
}

// Distance - расстояние между позициями двух точек.
func (p Point) Distance(o Point) float64 {
	return o.Position.Sub(p.Position).Len()
}
