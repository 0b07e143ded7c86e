package slidingwindow

import (
	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// ConstrainedSubsetSum returns the maximum sum of a non-empty subsequence of
// nums in which every two consecutive chosen indices are at most k apart.
// ok is false for an empty input.
//
// dp[i] = nums[i] + max(0, max(dp[i-k..i-1])); the deque holds dp values and
// is read before dp[i] is pushed.
func ConstrainedSubsetSum[V Summable](nums []V, k int, opts ...Option) (best V, ok bool, err error) {
	if err := checkWindow(k); err != nil {
		return best, false, err
	}
	o := newScanOptions(opts)
	md := datastructure.NewMaxDeque[V]()
	defer o.record(md)

	var zero V
	for i, v := range nums {
		md.EvictStale(i - k)
		dp := v
		if !md.IsEmpty() && md.Front().Value > zero {
			dp += md.Front().Value
		}
		if !ok || dp > best {
			best = dp
			ok = true
		}
		md.PushBack(i, dp)
	}
	return best, ok, nil
}

// MaxJumpScore returns the best score of a walk from index 0 to the last index
// where every jump moves 1..k positions forward and the score is the sum of
// the visited values. ok is false for an empty input.
func MaxJumpScore[V Summable](nums []V, k int, opts ...Option) (score V, ok bool, err error) {
	if err := checkWindow(k); err != nil {
		return score, false, err
	}
	if len(nums) == 0 {
		return score, false, nil
	}
	o := newScanOptions(opts)
	md := datastructure.NewMaxDeque[V]()
	defer o.record(md)

	md.PushBack(0, nums[0])
	score = nums[0]
	for i := 1; i < len(nums); i++ {
		md.EvictStale(i - k)
		score = nums[i] + md.Front().Value
		md.PushBack(i, score)
	}
	return score, true, nil
}
