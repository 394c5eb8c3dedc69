package program

import (
	"testing"

	"github.com/iwtcode/pendantService/internal/domain/instruction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_CreateGetList(t *testing.T) {
	l := NewLibrary()
	_, err := l.Create("b", "")
	require.NoError(t, err)
	_, err = l.Create("a", "first")
	require.NoError(t, err)

	_, err = l.Create("a", "")
	assert.ErrorIs(t, err, ErrProgramExists)
	_, err = l.Create("  ", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Name)
	assert.Equal(t, "a", list[1].Name)

	_, err = l.Get("missing")
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestLibrary_DuplicateIsIndependent(t *testing.T) {
	l := NewLibrary()
	src, err := l.Create("src", "")
	require.NoError(t, err)
	src.AddInstruction(instruction.NewDelay(1))

	dup, err := l.Duplicate("src", "copy")
	require.NoError(t, err)
	first, _ := dup.At(0)
	first.Delay().SetSeconds(3)

	orig, _ := src.At(0)
	assert.Equal(t, 1.0, orig.Delay().Seconds())

	_, err = l.Duplicate("src", "copy")
	assert.ErrorIs(t, err, ErrProgramExists)
	_, err = l.Duplicate("nope", "x")
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestLibrary_DeleteGuard(t *testing.T) {
	l := NewLibrary(New("main", ""), New("spare", ""))
	open := "main"
	l.AddGuard(func(name string) bool { return name == open })

	assert.ErrorIs(t, l.Delete("main"), ErrProgramInUse)
	assert.NoError(t, l.Delete("spare"))
	assert.ErrorIs(t, l.Delete("spare"), ErrProgramNotFound)

	open = ""
	assert.NoError(t, l.Delete("main"))
	assert.Empty(t, l.List())
}

func TestLibrary_SaveAndReplace(t *testing.T) {
	l := NewLibrary()
	require.NoError(t, l.Save(New("x", "")))
	assert.ErrorIs(t, l.Save(New("", "")), ErrInvalidName)

	require.NoError(t, l.Replace([]*Program{New("y", ""), New("z", "")}))
	_, err := l.Get("x")
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.Len(t, l.List(), 2)
}

func TestLibrary_KeepsDocumentOrder(t *testing.T) {
	l := NewLibrary()
	require.NoError(t, l.Replace([]*Program{New("zeta", ""), New("alpha", ""), New("mid", "")}))
	_, err := l.Duplicate("zeta", "beta")
	require.NoError(t, err)
	require.NoError(t, l.Delete("alpha"))
	require.NoError(t, l.Save(New("zeta", "updated")))

	names := []string{}
	for _, p := range l.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"zeta", "mid", "beta"}, names)
	assert.Equal(t, "updated", l.List()[0].Description)
}

func TestLibrary_ReplaceRejectsDuplicateNames(t *testing.T) {
	l := NewLibrary(New("keep", ""))
	err := l.Replace([]*Program{New("a", "first"), New("b", ""), New("a", "second")})
	assert.ErrorIs(t, err, ErrDuplicateName)

	require.Len(t, l.List(), 1)
	assert.Equal(t, "keep", l.List()[0].Name)
}
