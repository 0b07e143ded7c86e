package slidingwindow

import (
	"github.com/pkg/errors"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

var (
	// ErrInvalidWindow is returned for a window size or bound that admits no window.
	ErrInvalidWindow = errors.New("slidingwindow: invalid window")
	// ErrUnsortedPoints is returned when equation points are not sorted by x.
	ErrUnsortedPoints = errors.New("slidingwindow: points not sorted by x")
)

type Number = datastructure.Number

// Summable is the value set of the scans that add or subtract values: prefix
// sums, DP scores, y-x keys and max-min spreads. Narrow integer types would
// overflow on those, so only int, int64 and float64 based types qualify.
type Summable interface {
	~int | ~int64 | ~float64
}

type scanOptions struct {
	stats *datastructure.OpStats
}

// Option tunes a single driver call.
type Option func(*scanOptions)

// WithStats accumulates the deque operation counts of the scan into s.
func WithStats(s *datastructure.OpStats) Option {
	return func(o *scanOptions) {
		o.stats = s
	}
}

func newScanOptions(opts []Option) scanOptions {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o scanOptions) record(deques ...interface{ Stats() datastructure.OpStats }) {
	if o.stats == nil {
		return
	}
	for _, d := range deques {
		o.stats.Add(d.Stats())
	}
}

func checkWindow(k int) error {
	if k <= 0 {
		return errors.Wrapf(ErrInvalidWindow, "window size %d must be positive", k)
	}
	return nil
}
