package slidingwindow

import (
	"container/heap"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// MaxSlidingWindowHeap computes the same series as MaxSlidingWindow with a
// lazily pruned max heap in O(n log n). It is kept as an independent
// reference for cross-checking the deque scan.
func MaxSlidingWindowHeap[V Number](nums []V, k int) ([]float64, error) {
	if err := checkWindow(k); err != nil {
		return nil, err
	}
	if len(nums) < k {
		return []float64{}, nil
	}

	pq := make(datastructure.BinaryMaxHeap, 0, k)
	result := make([]float64, 0, len(nums)-k+1)
	for i, v := range nums {
		heap.Push(&pq, &datastructure.HeapEntry{Index: i, Value: float64(v)})
		if i < k-1 {
			continue
		}
		for pq.Peek().Index <= i-k {
			heap.Pop(&pq)
		}
		result = append(result, pq.Peek().Value)
	}
	return result, nil
}
