package slidingwindow

import (
	"github.com/pkg/errors"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// LongestSubarrayWithinLimit returns the length of the longest contiguous
// subarray whose max and min differ by at most limit. Both deques share the
// window start, which only moves right.
func LongestSubarrayWithinLimit[V Summable](nums []V, limit V, opts ...Option) (int, error) {
	var zero V
	if limit < zero {
		return 0, errors.Wrapf(ErrInvalidWindow, "limit %v must not be negative", limit)
	}
	o := newScanOptions(opts)
	highs := datastructure.NewMaxDeque[V]()
	lows := datastructure.NewMinDeque[V]()
	defer o.record(highs, lows)

	best, lo := 0, 0
	for hi, v := range nums {
		highs.PushBack(hi, v)
		lows.PushBack(hi, v)
		for highs.Front().Value-lows.Front().Value > limit {
			lo++
			highs.EvictStale(lo)
			lows.EvictStale(lo)
		}
		best = max(best, hi-lo+1)
	}
	return best, nil
}
