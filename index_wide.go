//go:build arcstr_wideidx

package arcstr

import "math"

type idx = uint

const maxIdx = math.MaxUint

func toIdx(i int) (idx, error) {
	return idx(i), nil
}
