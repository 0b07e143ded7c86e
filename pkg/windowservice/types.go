package windowservice

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"nickren/monowindow-go/pkg/window/utility"
)

type ReplyType int32

const (
	ReplyType_REPLY_OK ReplyType = iota
	// valid request whose result is empty: no full window, no qualifying
	// subarray, no pair of points within distance.
	ReplyType_REPLY_EMPTY
	ReplyType_REPLY_INVALID_ARGUMENT
	ReplyType_REPLY_VERIFY_FAILED
	ReplyType_REPLY_NOT_FOUND
	ReplyType_REPLY_CANCELLED
)

var ReplyType_name = map[int32]string{
	0: "REPLY_OK",
	1: "REPLY_EMPTY",
	2: "REPLY_INVALID_ARGUMENT",
	3: "REPLY_VERIFY_FAILED",
	4: "REPLY_NOT_FOUND",
	5: "REPLY_CANCELLED",
}

func (x ReplyType) String() string {
	if name, ok := ReplyType_name[int32(x)]; ok {
		return name
	}
	return fmt.Sprintf("ReplyType(%d)", int32(x))
}

var (
	ErrNilRequest       = errors.New("windowservice: nil request")
	ErrMixedSeries      = errors.New("windowservice: series carries both ints and floats")
	ErrNotANumber       = errors.New("windowservice: NaN in input")
	ErrFractionalBound  = errors.New("windowservice: fractional threshold for an integer series")
	ErrVerifyFailed     = errors.New("windowservice: result differs from brute force")
	ErrWindowOutOfRange = errors.New("windowservice: window size out of range")
)

// Series is the scanned sequence. Exactly one of Ints and Floats is used; a
// series with neither set is an empty integer series.
type Series struct {
	Ints   []int64
	Floats []float64
}

func (s *Series) IsFloat() bool {
	return s.Floats != nil
}

func (s *Series) Len() int {
	if s.IsFloat() {
		return len(s.Floats)
	}
	return len(s.Ints)
}

func (s *Series) Fingerprint() uint64 {
	if s.IsFloat() {
		return utility.FingerprintFloats(s.Floats)
	}
	return utility.FingerprintInts(s.Ints)
}

func (s *Series) validate() error {
	if s.Ints != nil && s.Floats != nil {
		return ErrMixedSeries
	}
	for i, v := range s.Floats {
		if math.IsNaN(v) {
			return errors.Wrapf(ErrNotANumber, "value %d", i)
		}
	}
	return nil
}

// WindowRequest drives the scans parameterized by a window size.
type WindowRequest struct {
	Series     Series
	WindowSize int64
	// Verify cross-checks the result against a brute-force scan.
	Verify bool
}

// ThresholdRequest drives the scans parameterized by a value bound: the sum
// target of ShortestSubarray and the limit of LongestWithinLimit.
type ThresholdRequest struct {
	Series    Series
	Threshold float64
	Verify    bool
}

type PointPair struct {
	X float64
	Y float64
}

type PointsRequest struct {
	Points   []PointPair
	Distance float64
	Verify   bool
}

type RunUID struct {
	RunUid uint64
}

type SeriesReply struct {
	Type   ReplyType
	RunUid uint64
	Series Series
}

// ScalarReply carries a single result. IntValue holds lengths and results of
// integer series, Value holds the result as float64 in every case.
type ScalarReply struct {
	Type     ReplyType
	RunUid   uint64
	Value    float64
	IntValue int64
}

type StatsReply struct {
	Type   ReplyType
	RunUid uint64
	Op     string
	Result ReplyType
	Stats  utility.ScanStats
}
