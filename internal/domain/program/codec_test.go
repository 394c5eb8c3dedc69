package program

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProgram() *Program {
	p := New("pick", "pick and place")
	p.AddInstruction(instruction.NewText("approach"))
	p.AddInstruction(instruction.NewMove(instruction.MovementJoint, 50, 10))
	p.AddInstruction(instruction.NewIf(instruction.LineIf, 2, true, true))
	p.AddInstruction(instruction.NewMove(instruction.MovementLinear, 25, 0))
	p.AddInstruction(instruction.NewIf(instruction.LineElseIf, 3, false, false))
	p.AddInstruction(instruction.NewDelay(1.25))
	p.AddInstruction(instruction.NewIf(instruction.LineElse, 0, true, true))
	p.AddInstruction(instruction.NewDigitalIn(4, true))
	p.AddInstruction(instruction.NewIf(instruction.LineEndIf, 0, true, true))
	tool := instruction.NewUseTool(instruction.ToolOff)
	tool.SetCommented(true)
	p.AddInstruction(tool)

	pose := NewPoint(mgl64.Vec3{0.5, 1.25, -3}, mgl64.Vec3{10, 20, 30})
	pose.JointAngles[2] = mgl64.QuatRotate(mgl64.DegToRad(45), mgl64.Vec3{0, 1, 0})
	_ = p.TouchUp(1, pose)
	return p
}

func TestCodec_RoundTrip(t *testing.T) {
	p := sampleProgram()
	data, err := Marshal([]*Program{p, New("empty", "")})
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, p.Name, got[0].Name)
	assert.Equal(t, p.Description, got[0].Description)
	assert.Equal(t, texts(p), texts(got[0]))
	assert.Equal(t, p.Points(), got[0].Points())
	for i, inst := range p.Instructions() {
		g, _ := got[0].At(i)
		assert.Equal(t, inst.Kind(), g.Kind())
		assert.Equal(t, inst.IsCommented(), g.IsCommented())
		assert.Equal(t, inst.IndentationLevel(), g.IndentationLevel())
	}

	assert.Equal(t, []string{"[End]"}, texts(got[1]))
	assert.Nil(t, got[1].Points())
}

func TestCodec_PointLayout(t *testing.T) {
	pt := NewPoint(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6})
	data, err := json.Marshal(pt)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]interface{}{"x": 1.0, "y": 2.0, "z": 3.0}, raw["position"])
	assert.Equal(t, map[string]interface{}{"x": 4.0, "y": 5.0, "z": 6.0}, raw["rotation"])
	joints, ok := raw["jointAngles"].([]interface{})
	require.True(t, ok)
	assert.Len(t, joints, JointCount)
	assert.Equal(t, map[string]interface{}{"x": 0.0, "y": 0.0, "z": 0.0, "w": 1.0}, joints[0])
}

func TestCodec_ShortJointListIsPadded(t *testing.T) {
	var pt Point
	require.NoError(t, json.Unmarshal([]byte(`{"position":{"x":1,"y":0,"z":0},"rotation":{"x":0,"y":0,"z":0},"jointAngles":[{"x":0,"y":0,"z":1,"w":0}]}`), &pt))
	require.Len(t, pt.JointAngles, JointCount)
	assert.Equal(t, mgl64.Quat{W: 0, V: mgl64.Vec3{0, 0, 1}}, pt.JointAngles[0])
	assert.Equal(t, mgl64.QuatIdent(), pt.JointAngles[5])
}

func TestCodec_DocumentKeys(t *testing.T) {
	data, err := json.Marshal(New("main", "desc"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"main","Description":"desc","Instructions":[{"type":4,"isCommented":false}],"SavedPoints":[]}`, string(data))
}

func TestCodec_EmptyInstructionListGetsPlaceholder(t *testing.T) {
	var p Program
	require.NoError(t, json.Unmarshal([]byte(`{"Name":"x","Description":"","Instructions":[],"SavedPoints":[]}`), &p))
	assert.Equal(t, []string{"[End]"}, texts(&p))
}

func TestCodec_RejectsUnknownInstructionType(t *testing.T) {
	_, err := Unmarshal([]byte(`[{"Name":"x","Instructions":[{"type":42}]}]`))
	assert.ErrorIs(t, err, instruction.ErrUnknownWireType)
}

func TestCodec_RejectsDuplicateProgramNames(t *testing.T) {
	_, err := Unmarshal([]byte(`[{"Name":"weld","Instructions":[]},{"Name":"weld","Instructions":[]}]`))
	assert.ErrorIs(t, err, ErrDuplicateName)
}
