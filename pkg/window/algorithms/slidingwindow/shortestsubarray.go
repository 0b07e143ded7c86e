package slidingwindow

import (
	"math"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// sumSlack is the relative slack granted to float sums compared with a target.
const sumSlack = 1e-9

// ReachesTarget reports whether sum >= target. Float sums may fall short of
// target by sumSlack relative to magnitude, the largest absolute partial sum
// that went into sum: a prefix difference and a direct window sum over the
// same values round differently.
func ReachesTarget[V Summable](sum, target V, magnitude float64) bool {
	if sum >= target {
		return true
	}
	if !isFloat[V]() {
		return false
	}
	scale := math.Max(1, math.Max(magnitude, math.Abs(float64(target))))
	return float64(target)-float64(sum) <= sumSlack*scale
}

func isFloat[V Summable]() bool {
	// integer division truncates a half to zero
	var half V = 1
	half /= 2
	return half != 0
}

// ShortestSubarraySumAtLeast returns the length of the shortest non-empty
// contiguous subarray whose sum is at least k, or -1 if there is none. Float
// sums are compared with ReachesTarget.
//
// The scan walks prefix sums P[0..n] with a min deque. Whenever the current
// prefix minus the front reaches k, the front's subarray is recorded and the
// window start moves past it: no later prefix can give that start a shorter
// subarray.
func ShortestSubarraySumAtLeast[V Summable](nums []V, k V, opts ...Option) int {
	o := newScanOptions(opts)
	md := datastructure.NewMinDeque[V]()
	defer o.record(md)

	best := -1
	var prefix V
	lo := 0
	md.PushBack(0, prefix)
	for i, v := range nums {
		prefix += v
		hi := i + 1
		for !md.IsEmpty() {
			front := md.Front()
			magnitude := math.Max(math.Abs(float64(prefix)), math.Abs(float64(front.Value)))
			if !ReachesTarget(prefix-front.Value, k, magnitude) {
				break
			}
			if length := hi - front.Index; best == -1 || length < best {
				best = length
			}
			lo = front.Index + 1
			md.EvictStale(lo)
		}
		md.PushBack(hi, prefix)
	}
	return best
}
