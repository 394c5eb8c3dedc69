package instruction

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireTable_IsBijective(t *testing.T) {
	want := map[Kind]int{
		KindText: 0, KindMove: 1, KindDelay: 2, KindUseTool: 3,
		KindEmpty: 4, KindDigitalIn: 5, KindIfBlock: 6,
	}
	for kind, code := range want {
		got, ok := WireCode(kind)
		require.True(t, ok)
		assert.Equal(t, code, got, kind)

		back, ok := KindFromWire(code)
		require.True(t, ok)
		assert.Equal(t, kind, back)
	}
	_, ok := KindFromWire(7)
	assert.False(t, ok)
}

func TestInstructionJSON_RoundTrip(t *testing.T) {
	for _, orig := range allVariants() {
		orig.SetCommented(orig.Kind() == KindDelay)

		data, err := json.Marshal(orig)
		require.NoError(t, err)

		var back Instruction
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, orig, &back, string(data))
	}
}

func TestInstructionJSON_Discriminant(t *testing.T) {
	data, err := json.Marshal(NewDigitalIn(4, true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":5,"isCommented":false,"bitIndex":4,"targetState":true}`, string(data))

	data, err = json.Marshal(NewDelay(0.25))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":2,"isCommented":false,"delayTime":0.25}`, string(data))
}

func TestInstructionJSON_UnknownType(t *testing.T) {
	var inst Instruction
	err := json.Unmarshal([]byte(`{"type":42}`), &inst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownWireType))
}

func TestInstructionJSON_RejectsInvalidEnumValues(t *testing.T) {
	cases := map[string]string{
		"movement type":     `{"type":1,"movementType":7,"speed":100}`,
		"negative movement": `{"type":1,"movementType":-1}`,
		"tool action":       `{"type":3,"actionType":2}`,
		"line type":         `{"type":6,"lineType":4}`,
		"negative line":     `{"type":6,"lineType":-1}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var ins Instruction
			err := json.Unmarshal([]byte(raw), &ins)
			assert.ErrorIs(t, err, ErrInvalidWireValue)
		})
	}

	var ins Instruction
	require.NoError(t, json.Unmarshal([]byte(`{"type":6,"lineType":3}`), &ins))
	assert.Equal(t, KindIfBlock, ins.Kind())
}

func TestInstructionJSON_ClampsOutOfRangeValues(t *testing.T) {
	var inst Instruction
	require.NoError(t, json.Unmarshal([]byte(`{"type":2,"delayTime":250}`), &inst))
	assert.InDelta(t, 99.99, inst.Delay().Seconds(), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`{"type":1,"movementType":0,"speed":500,"approximationAmount":300,"pointNumber":2}`), &inst))
	assert.Equal(t, 100, inst.Move().SpeedPercent())
	assert.Equal(t, 100, inst.Move().ApproximationAmount)
}
