package interlock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCodeTable(t *testing.T) {
	table, err := DefaultCodeTable()
	require.NoError(t, err)

	var codes []string
	for _, def := range table.Security {
		codes = append(codes, def.Code)
	}
	assert.Contains(t, codes, "S-1001")
	assert.Contains(t, codes, "S-1001-0")
	assert.NotEmpty(t, table.Robot)
	assert.NotEmpty(t, table.Alarm)
}

func TestParseCodeTable_Rejects(t *testing.T) {
	_, err := ParseCodeTable([]byte("robot:\n  - code: S-1\n"))
	assert.Error(t, err)

	_, err = ParseCodeTable([]byte("alarm:\n  - code: A-1\n  - code: A-1\n"))
	assert.Error(t, err)

	_, err = ParseCodeTable([]byte("security:\n  - message: no code\n"))
	assert.Error(t, err)

	_, err = ParseCodeTable([]byte("robot: [unterminated"))
	assert.Error(t, err)
}

func TestLoadCodeTable_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("robot:\n  - code: R-7\n    message: custom\n    autoUnraise: true\n"), 0o644))

	table, err := LoadCodeTable(path)
	require.NoError(t, err)
	require.Len(t, table.Robot, 1)
	assert.Equal(t, CodeDefinition{Code: "R-7", Message: "custom", AutoUnraise: true}, table.Robot[0])

	_, err = LoadCodeTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
