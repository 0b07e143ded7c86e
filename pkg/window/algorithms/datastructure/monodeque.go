package datastructure

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is the set of value types a monotonic deque can order. Unsigned
// types are left out: the scans feed the deque differences such as y-x,
// which wrap around instead of going negative.
type Number interface {
	constraints.Signed | constraints.Float
}

// Variant selects which extremum the deque keeps at its front.
type Variant int

const (
	VariantMax Variant = iota
	VariantMin
)

func (v Variant) String() string {
	switch v {
	case VariantMax:
		return "max"
	case VariantMin:
		return "min"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Entry is a position of the scanned sequence together with its value or
// derived score.
type Entry[V Number] struct {
	Index int
	Value V
}

// OpStats counts the deque operations of one scan. Every index is pushed once
// and popped at most once, so DominancePops+StalePops never exceeds Pushes.
type OpStats struct {
	Pushes        int
	DominancePops int
	StalePops     int
}

func (s OpStats) Pops() int {
	return s.DominancePops + s.StalePops
}

// Add accumulates other into s.
func (s *OpStats) Add(other OpStats) {
	s.Pushes += other.Pushes
	s.DominancePops += other.DominancePops
	s.StalePops += other.StalePops
}

// MonotonicDeque keeps window extremum candidates. Entries are stored with
// strictly increasing Index from front to back and strictly decreasing (max
// variant) or strictly increasing (min variant) Value, so the front is always
// the extremum of the entries still in the window.
//
// The deque is owned by a single scan and is not safe for concurrent use.
// Breaking the caller contract (pushing a non-increasing index, reading an
// empty deque) panics.
type MonotonicDeque[V Number] struct {
	entries *Deque[Entry[V]]
	variant Variant
	// dominated reports whether the back entry can never be the extremum again
	// once value is pushed behind it.
	dominated func(back, value V) bool

	lastIndex int
	pushed    bool
	stats     OpStats
}

const defaultDequeSize = 16

// NewMonotonicDeque returns an empty deque of the given variant.
func NewMonotonicDeque[V Number](variant Variant) *MonotonicDeque[V] {
	md := &MonotonicDeque[V]{
		entries: NewDeque[Entry[V]](defaultDequeSize),
		variant: variant,
	}
	switch variant {
	case VariantMax:
		md.dominated = func(back, value V) bool { return back <= value }
	case VariantMin:
		md.dominated = func(back, value V) bool { return back >= value }
	default:
		panic(fmt.Sprintf("monodeque: unknown variant %d", int(variant)))
	}
	return md
}

// NewMaxDeque returns a deque whose front is the window maximum.
func NewMaxDeque[V Number]() *MonotonicDeque[V] {
	return NewMonotonicDeque[V](VariantMax)
}

// NewMinDeque returns a deque whose front is the window minimum.
func NewMinDeque[V Number]() *MonotonicDeque[V] {
	return NewMonotonicDeque[V](VariantMin)
}

func (md *MonotonicDeque[V]) Variant() Variant {
	return md.variant
}

// PushBack appends (index, value) after evicting every back entry it
// dominates. Ties evict the older entry. index must be strictly greater than
// any index pushed before in this scan.
func (md *MonotonicDeque[V]) PushBack(index int, value V) {
	if md.pushed && index <= md.lastIndex {
		panic(fmt.Sprintf("monodeque: PushBack index %d is not greater than previous index %d",
			index, md.lastIndex))
	}
	for {
		back, ok := md.entries.PeekEnd()
		if !ok || !md.dominated(back.Value, value) {
			break
		}
		md.entries.PopEnd()
		md.stats.DominancePops++
	}
	md.entries.PushEnd(Entry[V]{Index: index, Value: value})
	md.lastIndex = index
	md.pushed = true
	md.stats.Pushes++
}

// EvictStale drops front entries whose index fell below lo. Calling it again
// with the same lo is a no-op.
func (md *MonotonicDeque[V]) EvictStale(lo int) {
	for {
		front, ok := md.entries.PeekFront()
		if !ok || front.Index >= lo {
			return
		}
		md.entries.PopFront()
		md.stats.StalePops++
	}
}

// Front returns the entry realizing the extremum of the current window.
func (md *MonotonicDeque[V]) Front() Entry[V] {
	front, ok := md.entries.PeekFront()
	if !ok {
		panic("monodeque: Front called on empty deque")
	}
	return front
}

// Back returns the most recently pushed surviving entry.
func (md *MonotonicDeque[V]) Back() Entry[V] {
	back, ok := md.entries.PeekEnd()
	if !ok {
		panic("monodeque: Back called on empty deque")
	}
	return back
}

func (md *MonotonicDeque[V]) IsEmpty() bool {
	return md.entries.IsEmpty()
}

func (md *MonotonicDeque[V]) Len() int {
	return md.entries.Size()
}

// Entries returns a front-to-back copy of the stored entries.
func (md *MonotonicDeque[V]) Entries() []Entry[V] {
	out := make([]Entry[V], 0, md.entries.Size())
	for i := 0; i < md.entries.Size(); i++ {
		e, _ := md.entries.At(i)
		out = append(out, e)
	}
	return out
}

func (md *MonotonicDeque[V]) Stats() OpStats {
	return md.stats
}

// Reset prepares the deque for a new scan, keeping its buffer.
func (md *MonotonicDeque[V]) Reset() {
	md.entries.Reset()
	md.lastIndex = 0
	md.pushed = false
	md.stats = OpStats{}
}
