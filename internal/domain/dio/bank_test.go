package dio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBank_GetSet(t *testing.T) {
	b := NewBank(4)
	assert.Equal(t, 4, b.Count())
	assert.False(t, b.Get(2))

	require.NoError(t, b.Set(2, true))
	assert.True(t, b.Get(2))
	assert.Error(t, b.Set(4, true))
	assert.False(t, b.Get(100))
}

func TestBank_SnapshotIsCopy(t *testing.T) {
	b := NewBank(2)
	snap := b.Snapshot()
	snap[0] = true
	assert.False(t, b.Get(0))
	assert.Equal(t, 0, NewBank(-1).Count())
}

func TestBank_HugeIndexOutOfRange(t *testing.T) {
	b := NewBank(8)
	huge := ^uint(0)

	assert.False(t, b.Get(huge))
	assert.Error(t, b.Set(huge, true))
	assert.Error(t, b.Set(uint(1)<<63, true))
}
