package arcstr_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/arcstr"
)

func TestSubstr_ZeroValue(t *testing.T) {
	var s arcstr.Substr
	assert.Equal(t, "", s.String())
	assert.True(t, s.IsEmpty())
	assert.True(t, s.EqualArcStr(arcstr.Empty()))

	c := s.Clone()
	c.Release()
	s.Release()
}

func TestNewSubstr(t *testing.T) {
	s, err := arcstr.NewSubstr("whole")
	require.NoError(t, err)
	defer s.Release()

	start, end := s.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, "whole", s.Parent().String())

	_, err = arcstr.NewSubstr("\xc0")
	assert.True(t, errors.Is(err, arcstr.ErrInvalidUTF8))
}

func TestSubstr_RelativeSlice(t *testing.T) {
	a := mustNew(t, "hello world")
	defer a.Release()

	world, err := a.Slice(6, 11)
	require.NoError(t, err)
	defer world.Release()

	orl, err := world.Slice(1, 4)
	require.NoError(t, err)
	defer orl.Release()

	assert.Equal(t, "orl", orl.String())
	start, end := orl.Range()
	assert.Equal(t, 7, start)
	assert.Equal(t, 10, end)
	assert.True(t, orl.Parent().PtrEq(a), "nested slices share the original base")

	_, err = world.Slice(1, 6)
	assert.True(t, errors.Is(err, arcstr.ErrOutOfBounds), "bounds are relative to the substr")
}

func TestSubstr_EmptySliceDropsBase(t *testing.T) {
	a := mustNew(t, "abc")
	defer a.Release()

	empty, err := a.Slice(2, 2)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	n, _ := a.StrongCount()
	assert.Equal(t, uint(1), n)
	empty.Release()
}

func TestSubstr_OutlivesBase(t *testing.T) {
	before := arcstr.Stats()

	a := mustNew(t, "keep the tail alive")
	tail, err := a.Slice(9, 19)
	require.NoError(t, err)

	a.Release()
	assert.Equal(t, before.Frees, arcstr.Stats().Frees)
	assert.Equal(t, "tail alive", tail.String())

	tail.Release()
	assert.Equal(t, before.Frees+1, arcstr.Stats().Frees)
}

func TestSubstr_ToArcStr(t *testing.T) {
	a := mustNew(t, "prefix:rest")
	defer a.Release()

	whole, err := a.Full()
	require.NoError(t, err)
	defer whole.Release()

	shared := whole.ToArcStr()
	defer shared.Release()
	assert.True(t, shared.PtrEq(a), "a full range shares the parent block")

	part, err := a.Slice(7, 11)
	require.NoError(t, err)
	defer part.Release()

	before := arcstr.Stats()
	copied := part.ToArcStr()
	defer copied.Release()
	assert.Equal(t, before.Allocs+1, arcstr.Stats().Allocs, "partial ranges allocate")
	assert.False(t, copied.PtrEq(a))
	assert.Equal(t, "rest", copied.String())
	assert.True(t, part.EqualArcStr(copied))
}

func TestSubstr_Equality(t *testing.T) {
	a := mustNew(t, "abab")
	defer a.Release()

	first, err := a.Slice(0, 2)
	require.NoError(t, err)
	defer first.Release()
	second, err := a.Slice(2, 4)
	require.NoError(t, err)
	defer second.Release()
	same := first.Clone()
	defer same.Release()

	assert.True(t, first.ShallowEqual(same))
	assert.False(t, first.ShallowEqual(second))
	assert.True(t, first.Equal(second))
	assert.True(t, first.EqualString("ab"))
	assert.Equal(t, 0, first.Compare(second))
	assert.Equal(t, first.Hash(), second.Hash())
	assert.Equal(t, first.Hash(), arcstr.Literal("ab").Hash())
}

func TestSubstr_SubstrFrom(t *testing.T) {
	a := mustNew(t, "outer [inner] outer")
	defer a.Release()

	bracket, err := a.Slice(6, 13)
	require.NoError(t, err)
	defer bracket.Release()

	inner, err := bracket.SubstrUsing(func(s string) string {
		return strings.Trim(s, "[]")
	})
	require.NoError(t, err)
	defer inner.Release()
	assert.Equal(t, "inner", inner.String())

	_, err = bracket.SubstrFrom(a.String()[:5])
	assert.True(t, errors.Is(err, arcstr.ErrNotSubstring), "bytes outside the range are rejected")
}

func TestLiteralSubstr(t *testing.T) {
	s := arcstr.LiteralSubstr("testing testing")

	assert.Equal(t, "testing testing", s.String())
	assert.True(t, s.Parent().IsStatic())
	assert.True(t, s.Parent().PtrEq(arcstr.Literal("testing testing")))
	start, end := s.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 15, end)

	before := arcstr.Stats()
	allocs := testing.AllocsPerRun(100, func() {
		sub := arcstr.LiteralSubstr("testing testing")
		c := sub.Clone()
		c.Release()
		sub.Release()
	})
	assert.Zero(t, allocs)
	assert.Equal(t, before.Allocs, arcstr.Stats().Allocs)

	assert.True(t, arcstr.LiteralSubstr("").IsEmpty())
	assert.Panics(t, func() { arcstr.LiteralSubstr("\xff") })
}
