package slidingwindow

import (
	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// MaxSlidingWindow returns the maximum of every window of k consecutive
// elements, n-k+1 values in total. An input shorter than k has no full window
// and yields an empty result.
func MaxSlidingWindow[V Number](nums []V, k int, opts ...Option) ([]V, error) {
	return slidingExtremum(nums, k, datastructure.VariantMax, opts)
}

// MinSlidingWindow is MaxSlidingWindow for window minimums.
func MinSlidingWindow[V Number](nums []V, k int, opts ...Option) ([]V, error) {
	return slidingExtremum(nums, k, datastructure.VariantMin, opts)
}

func slidingExtremum[V Number](nums []V, k int, variant datastructure.Variant, opts []Option) ([]V, error) {
	if err := checkWindow(k); err != nil {
		return nil, err
	}
	o := newScanOptions(opts)
	if len(nums) < k {
		return []V{}, nil
	}

	md := datastructure.NewMonotonicDeque[V](variant)
	result := make([]V, 0, len(nums)-k+1)
	for i, v := range nums {
		md.EvictStale(i - k + 1)
		md.PushBack(i, v)
		// the first full window ends at k-1
		if i >= k-1 {
			result = append(result, md.Front().Value)
		}
	}
	o.record(md)
	return result, nil
}
