package datastructure

// a deque which is based on a circular list that resizes as needed.
type Deque[T any] struct {
	nodes []T
	size  int
	head  int
	tail  int
	count int
}

// NewDeque returns a new deque with the given initial size. The deque grows
// by size slots every time it runs full.
func NewDeque[T any](size int) *Deque[T] {
	if size <= 0 {
		size = 1
	}
	return &Deque[T]{
		nodes: make([]T, size),
		size:  size,
	}
}

func (q *Deque[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *Deque[T]) Size() int {
	return q.count
}

// grow unrolls the ring into a bigger slice so that head is 0 again.
func (q *Deque[T]) grow() {
	nodes := make([]T, len(q.nodes)+q.size)
	copy(nodes, q.nodes[q.head:])
	copy(nodes[len(q.nodes)-q.head:], q.nodes[:q.head])
	q.head = 0
	q.tail = len(q.nodes)
	q.nodes = nodes
}

// PushEnd adds an element to the end of deque.
func (q *Deque[T]) PushEnd(n T) {
	if q.head == q.tail && q.count > 0 {
		q.grow()
	}
	q.nodes[q.tail] = n
	q.tail = (q.tail + 1) % len(q.nodes)
	q.count++
}

// PushFront adds an element to the front of deque.
func (q *Deque[T]) PushFront(n T) {
	if q.head == q.tail && q.count > 0 {
		q.grow()
	}

	q.head--
	if q.head < 0 {
		q.head = len(q.nodes) - 1
	}
	q.nodes[q.head] = n
	q.count++
}

// PopFront removes the first element of the deque.
func (q *Deque[T]) PopFront() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	node := q.nodes[q.head]
	q.nodes[q.head] = zero
	q.head = (q.head + 1) % len(q.nodes)
	q.count--
	return node, true
}

// PeekFront return the first element without removing it.
func (q *Deque[T]) PeekFront() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.nodes[q.head], true
}

func (q *Deque[T]) lastIndex() int {
	lastIndex := q.tail - 1
	if lastIndex < 0 {
		lastIndex = len(q.nodes) - 1
	}
	return lastIndex
}

// PopEnd remove the last element of the deque.
func (q *Deque[T]) PopEnd() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	q.tail = q.lastIndex()
	q.count--
	node := q.nodes[q.tail]
	q.nodes[q.tail] = zero
	return node, true
}

// PeekEnd return the last element without removing it.
func (q *Deque[T]) PeekEnd() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.nodes[q.lastIndex()], true
}

// At returns the i-th element counted from the front.
func (q *Deque[T]) At(i int) (T, bool) {
	if i < 0 || i >= q.count {
		var zero T
		return zero, false
	}
	return q.nodes[(q.head+i)%len(q.nodes)], true
}

// Reset drops every element but keeps the allocated ring.
func (q *Deque[T]) Reset() {
	var zero T
	for i := range q.nodes {
		q.nodes[i] = zero
	}
	q.head, q.tail, q.count = 0, 0, 0
}
