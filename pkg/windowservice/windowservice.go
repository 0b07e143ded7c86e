package windowservice

import (
	"context"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
	"nickren/monowindow-go/pkg/window/algorithms/slidingwindow"
	"nickren/monowindow-go/pkg/window/algorithms/utils"
	"nickren/monowindow-go/pkg/window/utility"
)

const (
	OpSlidingMax         = "sliding_max"
	OpSlidingMin         = "sliding_min"
	OpShortestSubarray   = "shortest_subarray"
	OpConstrainedSum     = "constrained_sum"
	OpMaxJump            = "max_jump"
	OpLongestWithinLimit = "longest_within_limit"
	OpMaxEquation        = "max_equation"
	OpRunStats           = "run_stats"
)

// DefaultMaxRuns bounds the run registry when Options.MaxRuns is not set.
const DefaultMaxRuns = 1024

// WindowServer answers window queries. Every call runs its own scan, so a
// server may be shared by concurrent callers.
type WindowServer interface {
	SlidingMax(context.Context, *WindowRequest) (*SeriesReply, error)
	SlidingMin(context.Context, *WindowRequest) (*SeriesReply, error)
	ShortestSubarray(context.Context, *ThresholdRequest) (*ScalarReply, error)
	ConstrainedSum(context.Context, *WindowRequest) (*ScalarReply, error)
	MaxJump(context.Context, *WindowRequest) (*ScalarReply, error)
	LongestWithinLimit(context.Context, *ThresholdRequest) (*ScalarReply, error)
	MaxEquation(context.Context, *PointsRequest) (*ScalarReply, error)
	RunStats(context.Context, *RunUID) (*StatsReply, error)
}

type Options struct {
	// MaxRuns is how many run records are kept for RunStats.
	MaxRuns int
	// Registerer receives the service metrics. Nil means
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// IDGenerator hands out run IDs. Nil means a time-seeded generator.
	IDGenerator *utility.IDGenerator
}

var _ WindowServer = &windowServer{}

type windowServer struct {
	ids      *utility.IDGenerator
	registry *runRegistry
	metrics  *serviceMetrics
}

func NewWindowServer(opts Options) WindowServer {
	if opts.MaxRuns <= 0 {
		opts.MaxRuns = DefaultMaxRuns
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = utility.NewIDGenerator()
	}
	return &windowServer{
		ids:      opts.IDGenerator,
		registry: newRunRegistry(opts.MaxRuns),
		metrics:  newServiceMetrics(opts.Registerer),
	}
}

// run follows one request from arrival to reply.
type run struct {
	op    string
	id    utility.RunID
	start time.Time
	stats utility.ScanStats
}

func (ws *windowServer) newRun(op string) *run {
	return &run{op: op, id: ws.ids.GenerateRunID(), start: time.Now()}
}

// scan times fn as the algorithmic part of the run and hands it the option
// collecting deque counters.
func (r *run) scan(elements, deques int, fn func(opt slidingwindow.Option)) {
	r.stats.Elements = elements
	r.stats.Deques = deques
	start := time.Now()
	fn(slidingwindow.WithStats(&r.stats.Ops))
	r.stats.AlgorithmRuntime = time.Since(start)
}

// settle maps the scan outcome to a reply type.
func (r *run) settle(err error, verified, empty bool) (ReplyType, error) {
	switch {
	case err != nil:
		return ReplyType_REPLY_INVALID_ARGUMENT, err
	case !verified:
		return ReplyType_REPLY_VERIFY_FAILED, errors.Wrapf(ErrVerifyFailed, "run %v (%s)", r.id, r.op)
	case empty:
		return ReplyType_REPLY_EMPTY, nil
	}
	return ReplyType_REPLY_OK, nil
}

func (ws *windowServer) finish(r *run, t ReplyType, err error, fingerprint uint64) {
	r.stats.TotalRuntime = time.Since(r.start)
	ws.registry.Add(r.id, RunRecord{Op: r.op, Result: t, Stats: r.stats})
	ws.metrics.observe(r.op, t, r.stats)

	switch t {
	case ReplyType_REPLY_INVALID_ARGUMENT:
		if glog.V(1) {
			glog.Errorf("run %v %s: %v", r.id, r.op, err)
		}
	case ReplyType_REPLY_VERIFY_FAILED:
		glog.Warningf("%v, input fingerprint %x", err, fingerprint)
	}
	if !r.stats.AmortizedOK() {
		glog.Warningf("run %v %s: deque counters %+v exceed %d elements", r.id, r.op, r.stats.Ops, r.stats.Elements)
	}
	glog.V(2).Infof("run %v %s: %v in %v (scan %v), %d elements, input %x, ops %+v",
		r.id, r.op, t, r.stats.TotalRuntime, r.stats.AlgorithmRuntime, r.stats.Elements, fingerprint, r.stats.Ops)
}

type validator interface {
	validate() error
}

func precheck(ctx context.Context, req validator) (ReplyType, error) {
	if err := ctx.Err(); err != nil {
		return ReplyType_REPLY_CANCELLED, err
	}
	if err := req.validate(); err != nil {
		return ReplyType_REPLY_INVALID_ARGUMENT, err
	}
	return ReplyType_REPLY_OK, nil
}

func (req *WindowRequest) validate() error {
	if req == nil {
		return ErrNilRequest
	}
	if req.WindowSize > math.MaxInt32 {
		return errors.Wrapf(ErrWindowOutOfRange, "window size %d", req.WindowSize)
	}
	return req.Series.validate()
}

func (req *ThresholdRequest) validate() error {
	if req == nil {
		return ErrNilRequest
	}
	if math.IsNaN(req.Threshold) {
		return errors.Wrap(ErrNotANumber, "threshold")
	}
	if !req.Series.IsFloat() {
		t := req.Threshold
		if math.IsInf(t, 0) || t != math.Trunc(t) || t < math.MinInt64 || t >= math.MaxInt64 {
			return errors.Wrapf(ErrFractionalBound, "threshold %v", t)
		}
	}
	return req.Series.validate()
}

func (req *PointsRequest) validate() error {
	if req == nil {
		return ErrNilRequest
	}
	if math.IsNaN(req.Distance) {
		return errors.Wrap(ErrNotANumber, "distance")
	}
	for i, p := range req.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return errors.Wrapf(ErrNotANumber, "point %d", i)
		}
	}
	return nil
}

func (ws *windowServer) SlidingMax(ctx context.Context, req *WindowRequest) (*SeriesReply, error) {
	return ws.slidingExtremum(ctx, OpSlidingMax, datastructure.VariantMax, req)
}

func (ws *windowServer) SlidingMin(ctx context.Context, req *WindowRequest) (*SeriesReply, error) {
	return ws.slidingExtremum(ctx, OpSlidingMin, datastructure.VariantMin, req)
}

func (ws *windowServer) slidingExtremum(ctx context.Context, op string, variant datastructure.Variant, req *WindowRequest) (*SeriesReply, error) {
	r := ws.newRun(op)
	reply := &SeriesReply{RunUid: uint64(r.id)}
	if t, err := precheck(ctx, req); err != nil {
		reply.Type = t
		ws.finish(r, t, err, 0)
		return reply, err
	}

	k := int(req.WindowSize)
	var verified bool
	var err error
	if req.Series.IsFloat() {
		reply.Series.Floats, verified, err = slidingSeries(r, req.Series.Floats, k, variant, req.Verify)
	} else {
		reply.Series.Ints, verified, err = slidingSeries(r, req.Series.Ints, k, variant, req.Verify)
	}
	reply.Type, err = r.settle(err, verified, reply.Series.Len() == 0)
	ws.finish(r, reply.Type, err, req.Series.Fingerprint())
	return reply, err
}

func (ws *windowServer) ShortestSubarray(ctx context.Context, req *ThresholdRequest) (*ScalarReply, error) {
	r := ws.newRun(OpShortestSubarray)
	reply := &ScalarReply{RunUid: uint64(r.id)}
	if t, err := precheck(ctx, req); err != nil {
		reply.Type = t
		ws.finish(r, t, err, 0)
		return reply, err
	}

	var length int
	var verified bool
	if req.Series.IsFloat() {
		length, verified = shortestSubarray(r, req.Series.Floats, req.Threshold, req.Verify)
	} else {
		length, verified = shortestSubarray(r, req.Series.Ints, int64(req.Threshold), req.Verify)
	}
	reply.IntValue, reply.Value = int64(length), float64(length)

	var err error
	reply.Type, err = r.settle(nil, verified, length == -1)
	ws.finish(r, reply.Type, err, req.Series.Fingerprint())
	return reply, err
}

func (ws *windowServer) ConstrainedSum(ctx context.Context, req *WindowRequest) (*ScalarReply, error) {
	return ws.windowScalar(ctx, OpConstrainedSum, req)
}

func (ws *windowServer) MaxJump(ctx context.Context, req *WindowRequest) (*ScalarReply, error) {
	return ws.windowScalar(ctx, OpMaxJump, req)
}

func (ws *windowServer) windowScalar(ctx context.Context, op string, req *WindowRequest) (*ScalarReply, error) {
	r := ws.newRun(op)
	reply := &ScalarReply{RunUid: uint64(r.id)}
	if t, err := precheck(ctx, req); err != nil {
		reply.Type = t
		ws.finish(r, t, err, 0)
		return reply, err
	}

	k := int(req.WindowSize)
	var found, verified bool
	var err error
	if req.Series.IsFloat() {
		scan, oracle := slidingwindow.ConstrainedSubsetSum[float64], utils.BruteForceConstrainedSum[float64]
		if op == OpMaxJump {
			scan, oracle = slidingwindow.MaxJumpScore[float64], utils.BruteForceMaxJump[float64]
		}
		reply.Value, found, verified, err = dpScalar(r, req.Series.Floats, k, scan, oracle, req.Verify)
		reply.IntValue = int64(reply.Value)
	} else {
		scan, oracle := slidingwindow.ConstrainedSubsetSum[int64], utils.BruteForceConstrainedSum[int64]
		if op == OpMaxJump {
			scan, oracle = slidingwindow.MaxJumpScore[int64], utils.BruteForceMaxJump[int64]
		}
		reply.IntValue, found, verified, err = dpScalar(r, req.Series.Ints, k, scan, oracle, req.Verify)
		reply.Value = float64(reply.IntValue)
	}
	reply.Type, err = r.settle(err, verified, !found)
	ws.finish(r, reply.Type, err, req.Series.Fingerprint())
	return reply, err
}

func (ws *windowServer) LongestWithinLimit(ctx context.Context, req *ThresholdRequest) (*ScalarReply, error) {
	r := ws.newRun(OpLongestWithinLimit)
	reply := &ScalarReply{RunUid: uint64(r.id)}
	if t, err := precheck(ctx, req); err != nil {
		reply.Type = t
		ws.finish(r, t, err, 0)
		return reply, err
	}

	var length int
	var verified bool
	var err error
	if req.Series.IsFloat() {
		length, verified, err = longestWithinLimit(r, req.Series.Floats, req.Threshold, req.Verify)
	} else {
		length, verified, err = longestWithinLimit(r, req.Series.Ints, int64(req.Threshold), req.Verify)
	}
	reply.IntValue, reply.Value = int64(length), float64(length)
	reply.Type, err = r.settle(err, verified, length == 0)
	ws.finish(r, reply.Type, err, req.Series.Fingerprint())
	return reply, err
}

func (ws *windowServer) MaxEquation(ctx context.Context, req *PointsRequest) (*ScalarReply, error) {
	r := ws.newRun(OpMaxEquation)
	reply := &ScalarReply{RunUid: uint64(r.id)}
	if t, err := precheck(ctx, req); err != nil {
		reply.Type = t
		ws.finish(r, t, err, 0)
		return reply, err
	}

	points := make([]slidingwindow.Point[float64], len(req.Points))
	flat := make([]float64, 0, 2*len(req.Points))
	for i, p := range req.Points {
		points[i] = slidingwindow.Point[float64]{X: p.X, Y: p.Y}
		flat = append(flat, p.X, p.Y)
	}

	var found bool
	var err error
	r.scan(len(points), 1, func(opt slidingwindow.Option) {
		reply.Value, found, err = slidingwindow.MaxValueOfEquation(points, req.Distance, opt)
	})
	verified := true
	if err == nil && req.Verify {
		want, wantFound := utils.BruteForceMaxEquation(points, req.Distance)
		verified = found == wantFound && sameValue(reply.Value, want)
	}
	reply.IntValue = int64(reply.Value)
	reply.Type, err = r.settle(err, verified, !found)
	ws.finish(r, reply.Type, err, utility.FingerprintFloats(flat))
	return reply, err
}

func (ws *windowServer) RunStats(ctx context.Context, uid *RunUID) (*StatsReply, error) {
	reply := &StatsReply{}
	var err error
	switch {
	case ctx.Err() != nil:
		reply.Type, err = ReplyType_REPLY_CANCELLED, ctx.Err()
	case uid == nil:
		reply.Type, err = ReplyType_REPLY_INVALID_ARGUMENT, ErrNilRequest
	default:
		reply.RunUid = uid.RunUid
		rec, ok := ws.registry.Get(utility.RunID(uid.RunUid))
		if !ok {
			reply.Type = ReplyType_REPLY_NOT_FOUND
			break
		}
		reply.Type = ReplyType_REPLY_OK
		reply.Op, reply.Result, reply.Stats = rec.Op, rec.Result, rec.Stats
	}
	ws.metrics.observe(OpRunStats, reply.Type, utility.ScanStats{})
	return reply, err
}
