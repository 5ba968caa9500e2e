//go:build !arcstr_wideidx

package arcstr

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIdx_Overflow(t *testing.T) {
	if strconv.IntSize == 32 {
		t.Skip("int cannot exceed the index range on 32-bit platforms")
	}

	limit := uint64(math.MaxUint32)
	i, err := toIdx(int(limit))
	require.NoError(t, err)
	assert.Equal(t, idx(math.MaxUint32), i)

	_, err = toIdx(int(limit + 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexOverflow))
}

func TestLayout(t *testing.T) {
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Sizeof(ArcStr{}), "ArcStr is one machine word")
	if strconv.IntSize == 64 {
		assert.Equal(t, uintptr(16), unsafe.Sizeof(Substr{}))
	}
	assert.Zero(t, offsetData%8, "payload must start word-aligned")
}
