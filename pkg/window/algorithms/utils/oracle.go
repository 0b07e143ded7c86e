package utils

import (
	"math"

	"github.com/gammazero/deque"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
	"nickren/monowindow-go/pkg/window/algorithms/slidingwindow"
)

/**
	Brute-force oracles for the deque scans. Each one rescans its whole window
	at every step, so they are quadratic and only meant for verification and
	tests.
*/

func better[V datastructure.Number](variant datastructure.Variant, a, b V) bool {
	if variant == datastructure.VariantMax {
		return a > b
	}
	return a < b
}

// WindowExtremum scans nums[lo..hi] and returns its max or min.
func WindowExtremum[V datastructure.Number](nums []V, lo, hi int, variant datastructure.Variant) (V, bool) {
	var best V
	lo = max(lo, 0)
	hi = min(hi, len(nums)-1)
	if lo > hi {
		return best, false
	}
	best = nums[lo]
	for i := lo + 1; i <= hi; i++ {
		if better(variant, nums[i], best) {
			best = nums[i]
		}
	}
	return best, true
}

func scanWindow[V datastructure.Number](window *deque.Deque[V], variant datastructure.Variant) V {
	best := window.At(0)
	for i := 1; i < window.Len(); i++ {
		if v := window.At(i); better(variant, v, best) {
			best = v
		}
	}
	return best
}

// BruteForceSlidingWindow returns the extremum of every full window of size k.
func BruteForceSlidingWindow[V datastructure.Number](nums []V, k int, variant datastructure.Variant) []V {
	result := []V{}
	if k <= 0 {
		return result
	}
	var window deque.Deque[V]
	for _, v := range nums {
		window.PushBack(v)
		if window.Len() > k {
			window.PopFront()
		}
		if window.Len() == k {
			result = append(result, scanWindow(&window, variant))
		}
	}
	return result
}

// BruteForceShortestSubarray tries every subarray, summing each window
// directly.
func BruteForceShortestSubarray[V slidingwindow.Summable](nums []V, k V) int {
	best := -1
	for i := range nums {
		var sum V
		magnitude := 0.0
		for j := i; j < len(nums); j++ {
			sum += nums[j]
			magnitude = math.Max(magnitude, math.Abs(float64(sum)))
			if slidingwindow.ReachesTarget(sum, k, magnitude) {
				if best == -1 || j-i+1 < best {
					best = j - i + 1
				}
				break
			}
		}
	}
	return best
}

// BruteForceConstrainedSum runs the subsequence DP keeping the last k dp
// values in a plain window buffer.
func BruteForceConstrainedSum[V slidingwindow.Summable](nums []V, k int) (V, bool) {
	var best, zero V
	if k <= 0 || len(nums) == 0 {
		return best, false
	}
	var window deque.Deque[V]
	for i, v := range nums {
		dp := v
		if window.Len() > 0 {
			if prev := scanWindow(&window, datastructure.VariantMax); prev > zero {
				dp += prev
			}
		}
		if i == 0 || dp > best {
			best = dp
		}
		window.PushBack(dp)
		if window.Len() > k {
			window.PopFront()
		}
	}
	return best, true
}

// BruteForceMaxJump runs the jump DP over a plain window buffer.
func BruteForceMaxJump[V slidingwindow.Summable](nums []V, k int) (V, bool) {
	var score V
	if k <= 0 || len(nums) == 0 {
		return score, false
	}
	var window deque.Deque[V]
	score = nums[0]
	window.PushBack(score)
	for i := 1; i < len(nums); i++ {
		score = nums[i] + scanWindow(&window, datastructure.VariantMax)
		window.PushBack(score)
		if window.Len() > k {
			window.PopFront()
		}
	}
	return score, true
}

// BruteForceLongestWithinLimit tries every start and extends while the range
// stays within limit.
func BruteForceLongestWithinLimit[V slidingwindow.Summable](nums []V, limit V) int {
	best := 0
	for i := range nums {
		hi, lo := nums[i], nums[i]
		for j := i; j < len(nums); j++ {
			hi = max(hi, nums[j])
			lo = min(lo, nums[j])
			if hi-lo > limit {
				break
			}
			best = max(best, j-i+1)
		}
	}
	return best
}

// BruteForceMaxEquation tries every pair of points.
func BruteForceMaxEquation[V slidingwindow.Summable](points []slidingwindow.Point[V], k V) (V, bool) {
	var best V
	ok := false
	for j := range points {
		for i := 0; i < j; i++ {
			dx := points[j].X - points[i].X
			if dx < 0 {
				dx = -dx
			}
			if dx > k {
				continue
			}
			if v := points[i].Y + points[j].Y + dx; !ok || v > best {
				best = v
				ok = true
			}
		}
	}
	return best, ok
}
