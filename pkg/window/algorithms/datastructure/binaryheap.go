package datastructure

// HeapEntry is a scanned position kept by the lazy-deletion window heap.
type HeapEntry struct {
	Index int
	Value float64
}

// BinaryMaxHeap orders entries by value, newest index first on ties.
// Use it through container/heap.
type BinaryMaxHeap []*HeapEntry

func (pq BinaryMaxHeap) Len() int { return len(pq) }

func (pq BinaryMaxHeap) Less(i, j int) bool {
	if pq[i].Value == pq[j].Value {
		return pq[i].Index > pq[j].Index
	}
	return pq[i].Value > pq[j].Value
}

func (pq BinaryMaxHeap) Swap(i, j int) {
	if i < 0 || j < 0 {
		return
	}
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *BinaryMaxHeap) Push(x interface{}) {
	*pq = append(*pq, x.(*HeapEntry))
}

func (pq *BinaryMaxHeap) Pop() interface{} {
	old := *pq
	n := len(old)
	if n == 0 {
		return nil
	}
	x := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return x
}

// Peek returns the top entry without removing it, or nil when empty.
func (pq BinaryMaxHeap) Peek() *HeapEntry {
	if len(pq) == 0 {
		return nil
	}
	return pq[0]
}
