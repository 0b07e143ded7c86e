package windowservice

import (
	"math"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
	"nickren/monowindow-go/pkg/window/algorithms/slidingwindow"
	"nickren/monowindow-go/pkg/window/algorithms/utils"
)

// The helpers below run one driver inside a run and, when asked, compare its
// result with the brute-force oracle. They return verified=true when no
// verification was requested.

func slidingSeries[V datastructure.Number](r *run, nums []V, k int, variant datastructure.Variant, verify bool) ([]V, bool, error) {
	var out []V
	var err error
	r.scan(len(nums), 1, func(opt slidingwindow.Option) {
		if variant == datastructure.VariantMax {
			out, err = slidingwindow.MaxSlidingWindow(nums, k, opt)
		} else {
			out, err = slidingwindow.MinSlidingWindow(nums, k, opt)
		}
	})
	if err != nil || !verify {
		return out, true, err
	}
	want := utils.BruteForceSlidingWindow(nums, k, variant)
	if len(out) != len(want) {
		return out, false, nil
	}
	for i := range out {
		if out[i] != want[i] {
			return out, false, nil
		}
	}
	return out, true, nil
}

func shortestSubarray[V slidingwindow.Summable](r *run, nums []V, k V, verify bool) (int, bool) {
	var length int
	// prefix scans push n+1 positions
	r.scan(len(nums)+1, 1, func(opt slidingwindow.Option) {
		length = slidingwindow.ShortestSubarraySumAtLeast(nums, k, opt)
	})
	if !verify {
		return length, true
	}
	return length, length == utils.BruteForceShortestSubarray(nums, k)
}

func dpScalar[V slidingwindow.Summable](
	r *run,
	nums []V,
	k int,
	scan func([]V, int, ...slidingwindow.Option) (V, bool, error),
	oracle func([]V, int) (V, bool),
	verify bool,
) (value V, found, verified bool, err error) {
	r.scan(len(nums), 1, func(opt slidingwindow.Option) {
		value, found, err = scan(nums, k, opt)
	})
	if err != nil || !verify {
		return value, found, true, err
	}
	want, wantFound := oracle(nums, k)
	return value, found, found == wantFound && sameValue(value, want), nil
}

func longestWithinLimit[V slidingwindow.Summable](r *run, nums []V, limit V, verify bool) (int, bool, error) {
	var length int
	var err error
	r.scan(len(nums), 2, func(opt slidingwindow.Option) {
		length, err = slidingwindow.LongestSubarrayWithinLimit(nums, limit, opt)
	})
	if err != nil || !verify {
		return length, true, err
	}
	return length, length == utils.BruteForceLongestWithinLimit(nums, limit), nil
}

// sameValue compares integers exactly and floats up to rounding, since the
// deque scans and the oracles add the same terms in a different order.
func sameValue[V datastructure.Number](a, b V) bool {
	if a == b {
		return true
	}
	var zero V
	if _, isFloat := any(zero).(float64); !isFloat {
		return false
	}
	fa, fb := float64(a), float64(b)
	scale := math.Max(1, math.Max(math.Abs(fa), math.Abs(fb)))
	return math.Abs(fa-fb) <= 1e-9*scale
}
