//go:build !arcstr_wideidx

package arcstr

import (
	"math"

	"go.trai.ch/zerr"
)

// idx stores Substr bounds. Build with the arcstr_wideidx tag for pointer-width bounds
// when strings longer than 4 GiB must be sliced.
type idx = uint32

const maxIdx = math.MaxUint32

func toIdx(i int) (idx, error) {
	if uint64(i) > maxIdx {
		return 0, zerr.With(zerr.Wrap(ErrIndexOverflow, "build with -tags arcstr_wideidx for larger strings"), "index", i)
	}
	return idx(i), nil
}
