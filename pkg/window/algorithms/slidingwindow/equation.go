package slidingwindow

import (
	"github.com/pkg/errors"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// Point is one (x, y) sample of an equation scan.
type Point[V Summable] struct {
	X V
	Y V
}

// MaxValueOfEquation returns the maximum of yi + yj + |xi - xj| over pairs
// i < j with xj - xi <= k. points must be sorted by x. ok is false when no
// pair is close enough.
//
// For i < j the value is (yi - xi) + (yj + xj), so a max deque over yi - xi
// whose window start follows the first x within k of xj answers each j.
func MaxValueOfEquation[V Summable](points []Point[V], k V, opts ...Option) (best V, ok bool, err error) {
	var zero V
	if k < zero {
		return best, false, errors.Wrapf(ErrInvalidWindow, "distance bound %v must not be negative", k)
	}
	for j := 1; j < len(points); j++ {
		if points[j].X < points[j-1].X {
			return best, false, errors.Wrapf(ErrUnsortedPoints, "x[%d]=%v after x[%d]=%v",
				j, points[j].X, j-1, points[j-1].X)
		}
	}

	o := newScanOptions(opts)
	md := datastructure.NewMaxDeque[V]()
	defer o.record(md)

	lo := 0
	for j, p := range points {
		for lo < j && p.X-points[lo].X > k {
			lo++
		}
		md.EvictStale(lo)
		if !md.IsEmpty() {
			if v := md.Front().Value + p.Y + p.X; !ok || v > best {
				best = v
				ok = true
			}
		}
		md.PushBack(j, p.Y-p.X)
	}
	return best, ok, nil
}
