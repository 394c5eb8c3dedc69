package pendant_service

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/iwtcode/pendantService/internal/domain/dio"
	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/iwtcode/pendantService/internal/domain/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(pose mgl64.Vec3) (*Editor, *program.Program) {
	e := NewEditor(dio.NewBank(8), func() program.Point {
		return program.NewPoint(pose, mgl64.Vec3{})
	})
	p := program.New("main", "")
	e.Open(p)
	return e, p
}

func TestEditor_RequiresOpenProgram(t *testing.T) {
	e := NewEditor(dio.NewBank(8), nil)

	assert.ErrorIs(t, e.Goto(0), ErrNoProgramOpen)
	assert.ErrorIs(t, e.Input("1"), ErrNoProgramOpen)
	assert.ErrorIs(t, e.Insert(instruction.KindDelay, program.Under), ErrNoProgramOpen)
	_, _, _, err := e.Highlight()
	assert.ErrorIs(t, err, ErrNoProgramOpen)
}

func TestEditor_DelayDigitEntry(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{})

	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))
	assert.Equal(t, 1, p.Len(), "insert over the empty line replaces it")

	require.NoError(t, e.SelectPart(1))
	for _, tok := range []string{"1", "2", ".", "5"} {
		require.NoError(t, e.Input(tok))
	}

	text, start, end, err := e.Highlight()
	require.NoError(t, err)
	assert.Equal(t, "WAIT 12.50(sec)", text)
	assert.Equal(t, "12.50", text[start:end])
}

func TestEditor_ReselectingFieldReplacesValue(t *testing.T) {
	e, _ := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))

	require.NoError(t, e.SelectPart(1))
	require.NoError(t, e.Input("4"))
	require.NoError(t, e.Input("2"))
	require.NoError(t, e.SelectPart(1))
	require.NoError(t, e.Input("7"))

	text, _, _, err := e.Highlight()
	require.NoError(t, err)
	assert.Equal(t, "WAIT 7.00(sec)", text)
}

func TestEditor_InsertMoveRecordsPose(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{1, 2, 3})

	require.NoError(t, e.Insert(instruction.KindMove, program.Under))
	require.Equal(t, 1, p.SavedPointCount())

	pt, err := p.Point(0)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, pt.Position)
}

func TestEditor_InsertAboveAndUnder(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))
	require.NoError(t, e.Insert(instruction.KindUseTool, program.Under))
	assert.Equal(t, 1, e.Line())

	require.NoError(t, e.Insert(instruction.KindText, program.Above))
	assert.Equal(t, 1, e.Line())

	kinds := []instruction.Kind{}
	for _, inst := range p.Instructions() {
		kinds = append(kinds, inst.Kind())
	}
	assert.Equal(t, []instruction.Kind{instruction.KindDelay, instruction.KindText, instruction.KindUseTool}, kinds)
}

func TestEditor_StepClamps(t *testing.T) {
	e, _ := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))

	require.NoError(t, e.Step(10))
	assert.Equal(t, 1, e.Line())
	require.NoError(t, e.Step(-10))
	assert.Equal(t, 0, e.Line())

	assert.ErrorIs(t, e.Goto(5), program.ErrIndexOutOfRange)
}

func TestEditor_PartNavigation(t *testing.T) {
	e, _ := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindMove, program.Under))

	for i := 0; i < 10; i++ {
		require.NoError(t, e.NextPart())
	}
	assert.Equal(t, 4, e.Part())

	require.NoError(t, e.PrevPart())
	assert.Equal(t, 3, e.Part())
}

func TestEditor_DeleteLastLineLeavesEmpty(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))

	require.NoError(t, e.Delete())
	require.Equal(t, 1, p.Len())
	inst, err := p.At(0)
	require.NoError(t, err)
	assert.True(t, inst.IsEmpty())
}

func TestEditor_ChangeKindToMoveAllocatesPoint(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{0, 1, 0})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))

	require.NoError(t, e.ChangeKind(instruction.KindMove))
	inst, err := p.At(0)
	require.NoError(t, err)
	require.NotNil(t, inst.Move())
	assert.Equal(t, 0, inst.Move().PointNumber)
	assert.Equal(t, 1, p.SavedPointCount())
}

func TestEditor_SetTextReplacesLine(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))

	require.NoError(t, e.SetText("pick part"))
	inst, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, instruction.KindText, inst.Kind())
	assert.Equal(t, "!pick part", inst.Text())
}

func TestEditor_TouchUp(t *testing.T) {
	pose := mgl64.Vec3{}
	e := NewEditor(dio.NewBank(8), func() program.Point { return program.NewPoint(pose, mgl64.Vec3{}) })
	p := program.New("main", "")
	e.Open(p)

	require.NoError(t, e.Insert(instruction.KindMove, program.Under))
	pose = mgl64.Vec3{5, 0, 0}
	require.NoError(t, e.TouchUp())

	pt, err := p.Point(0)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{5, 0, 0}, pt.Position)

	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))
	assert.Error(t, e.TouchUp())
}

func TestEditor_ToggleComment(t *testing.T) {
	e, p := newTestEditor(mgl64.Vec3{})
	require.NoError(t, e.Insert(instruction.KindDelay, program.Under))

	require.NoError(t, e.ToggleComment())
	inst, _ := p.At(0)
	assert.True(t, inst.IsCommented())
	assert.Equal(t, "!WAIT 0.00(sec)", inst.Text())
}
