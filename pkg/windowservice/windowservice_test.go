package windowservice

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/golang/glog"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"nickren/monowindow-go/pkg/window/algorithms/slidingwindow"
)

var _ = Describe("Windowservice", func() {
	glog.Info("Test")
	var ms *MockService
	var ctx context.Context

	BeforeEach(func() {
		ms = newMockService(8)
		ctx = context.Background()
	})

	Describe("Sliding window extremum", func() {
		Context("integer series", func() {
			It("returns the maximum of every window", func() {
				reply := ms.slidingMax(ints(1, 3, -1, -3, 5, 3, 6, 7), 3)
				Expect(reply.Type).To(Equal(ReplyType_REPLY_OK))
				Expect(reply.Series.Ints).To(Equal([]int64{3, 3, 5, 5, 6, 7}))
			})
			It("handles a single element window", func() {
				reply := ms.slidingMax(ints(1), 1)
				Expect(reply.Series.Ints).To(Equal([]int64{1}))
			})
			It("collapses ties", func() {
				reply := ms.slidingMax(ints(5, 5, 5, 5), 2)
				Expect(reply.Series.Ints).To(Equal([]int64{5, 5, 5}))
				stats := ms.runStats(reply.RunUid)
				By("every tie evicts the older entry")
				Expect(stats.Stats.Ops.DominancePops).To(Equal(3))
			})
			It("returns the minimum of every window", func() {
				reply, err := ms.service.SlidingMin(ctx, &WindowRequest{Series: ints(1, 2, 3, 4, 5), WindowSize: 2, Verify: true})
				Expect(err).Should(BeNil())
				Expect(reply.Series.Ints).To(Equal([]int64{1, 2, 3, 4}))
			})
		})
		Context("float series", func() {
			It("keeps the series type", func() {
				reply, err := ms.service.SlidingMax(ctx, &WindowRequest{Series: floats(0.5, 2.5, -1, 2.5), WindowSize: 2, Verify: true})
				Expect(err).Should(BeNil())
				Expect(reply.Series.IsFloat()).To(BeTrue())
				Expect(reply.Series.Floats).To(Equal([]float64{2.5, 2.5, 2.5}))
			})
		})
		Context("empty and invalid input", func() {
			It("reports an input shorter than the window as empty", func() {
				reply := ms.slidingMax(ints(1, 2), 3)
				Expect(reply.Type).To(Equal(ReplyType_REPLY_EMPTY))
				Expect(reply.Series.Len()).To(Equal(0))
			})
			It("rejects a non-positive window", func() {
				reply, err := ms.service.SlidingMax(ctx, &WindowRequest{Series: ints(1, 2), WindowSize: 0})
				Expect(errors.Is(err, slidingwindow.ErrInvalidWindow)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
			It("rejects NaN", func() {
				reply, err := ms.service.SlidingMax(ctx, &WindowRequest{Series: floats(1, math.NaN()), WindowSize: 1})
				Expect(errors.Is(err, ErrNotANumber)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
			It("rejects a series with both ints and floats", func() {
				reply, err := ms.service.SlidingMin(ctx, &WindowRequest{Series: Series{Ints: []int64{1}, Floats: []float64{1}}, WindowSize: 1})
				Expect(errors.Is(err, ErrMixedSeries)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
			It("rejects a nil request", func() {
				reply, err := ms.service.SlidingMax(ctx, nil)
				Expect(errors.Is(err, ErrNilRequest)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
			It("stops on a cancelled context", func() {
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				reply, err := ms.service.SlidingMax(cctx, &WindowRequest{Series: ints(1, 2), WindowSize: 1})
				Expect(err).To(Equal(context.Canceled))
				Expect(reply.Type).To(Equal(ReplyType_REPLY_CANCELLED))
			})
		})
	})

	Describe("Scalar scans", func() {
		Context("integer series", func() {
			It("finds the shortest subarray", func() {
				reply := ms.scalar(ms.service.ShortestSubarray(ctx, &ThresholdRequest{Series: ints(2, -1, 2), Threshold: 3, Verify: true}))
				Expect(reply.IntValue).To(Equal(int64(3)))

				missing, err := ms.service.ShortestSubarray(ctx, &ThresholdRequest{Series: ints(1, 2), Threshold: 4, Verify: true})
				Expect(err).Should(BeNil())
				Expect(missing.Type).To(Equal(ReplyType_REPLY_EMPTY))
				Expect(missing.IntValue).To(Equal(int64(-1)))
			})
			It("rejects a fractional threshold", func() {
				reply, err := ms.service.ShortestSubarray(ctx, &ThresholdRequest{Series: ints(1, 2), Threshold: 1.5})
				Expect(errors.Is(err, ErrFractionalBound)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
			It("computes the constrained subset sum", func() {
				reply := ms.scalar(ms.service.ConstrainedSum(ctx, &WindowRequest{Series: ints(10, 2, -10, 5, 20), WindowSize: 2, Verify: true}))
				Expect(reply.IntValue).To(Equal(int64(37)))
				Expect(reply.Value).To(Equal(37.0))
			})
			It("computes the jump score", func() {
				reply := ms.scalar(ms.service.MaxJump(ctx, &WindowRequest{Series: ints(1, -1, -2, 4, -7, 3), WindowSize: 2, Verify: true}))
				Expect(reply.IntValue).To(Equal(int64(7)))
			})
			It("finds the longest subarray within a limit", func() {
				reply := ms.scalar(ms.service.LongestWithinLimit(ctx, &ThresholdRequest{Series: ints(8, 2, 4, 7), Threshold: 4, Verify: true}))
				Expect(reply.IntValue).To(Equal(int64(2)))
				reply = ms.scalar(ms.service.LongestWithinLimit(ctx, &ThresholdRequest{Series: ints(10, 1, 2, 4, 7, 2), Threshold: 5, Verify: true}))
				Expect(reply.IntValue).To(Equal(int64(4)))
			})
			It("reports empty input as empty", func() {
				reply, err := ms.service.ConstrainedSum(ctx, &WindowRequest{Series: ints(), WindowSize: 2})
				Expect(err).Should(BeNil())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_EMPTY))
				reply, err = ms.service.LongestWithinLimit(ctx, &ThresholdRequest{Series: ints(), Threshold: 1})
				Expect(err).Should(BeNil())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_EMPTY))
			})
			It("rejects a negative limit", func() {
				reply, err := ms.service.LongestWithinLimit(ctx, &ThresholdRequest{Series: ints(1), Threshold: -1})
				Expect(errors.Is(err, slidingwindow.ErrInvalidWindow)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
		})
		Context("float series", func() {
			It("verifies float sums", func() {
				reply := ms.scalar(ms.service.ConstrainedSum(ctx, &WindowRequest{Series: floats(0.1, 0.2, -5, 0.3), WindowSize: 2, Verify: true}))
				Expect(reply.Value).To(BeNumerically("~", 0.6, 1e-12))
			})
			It("finds the shortest subarray on decimal input", func() {
				reply := ms.scalar(ms.service.ShortestSubarray(ctx, &ThresholdRequest{Series: floats(0.3, 0, 0.2, 0.2, 0.6, 0.2), Threshold: 1, Verify: true}))
				Expect(reply.IntValue).To(Equal(int64(3)))
			})
		})
		Context("points", func() {
			It("maximizes the equation", func() {
				points := []PointPair{{1, 3}, {2, 0}, {5, 10}, {6, -10}}
				reply := ms.scalar(ms.service.MaxEquation(ctx, &PointsRequest{Points: points, Distance: 1, Verify: true}))
				Expect(reply.Value).To(Equal(4.0))
			})
			It("reports no close pair as empty", func() {
				reply, err := ms.service.MaxEquation(ctx, &PointsRequest{Points: []PointPair{{0, 0}, {5, 0}}, Distance: 2})
				Expect(err).Should(BeNil())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_EMPTY))
			})
			It("rejects unsorted points", func() {
				reply, err := ms.service.MaxEquation(ctx, &PointsRequest{Points: []PointPair{{3, 0}, {1, 0}}, Distance: 5})
				Expect(errors.Is(err, slidingwindow.ErrUnsortedPoints)).To(BeTrue())
				Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
			})
		})
	})

	Describe("Run registry", func() {
		It("keeps the stats of each run", func() {
			reply := ms.slidingMax(ints(1, 3, -1, -3, 5, 3, 6, 7), 3)
			stats := ms.runStats(reply.RunUid)
			Expect(stats.Type).To(Equal(ReplyType_REPLY_OK))
			Expect(stats.Op).To(Equal(OpSlidingMax))
			Expect(stats.Result).To(Equal(ReplyType_REPLY_OK))
			Expect(stats.Stats.Elements).To(Equal(8))
			Expect(stats.Stats.Ops.Pushes).To(Equal(8))
			Expect(stats.Stats.AmortizedOK()).To(BeTrue())
		})
		It("drops the oldest runs", func() {
			first := ms.slidingMax(ints(1, 2), 1)
			for i := 0; i < 8; i++ {
				ms.slidingMax(ints(1, 2), 1)
			}
			Expect(ms.server().registry.Count()).To(Equal(8))
			Expect(ms.runStats(first.RunUid).Type).To(Equal(ReplyType_REPLY_NOT_FOUND))
		})
		It("rejects a nil run uid", func() {
			reply, err := ms.service.RunStats(ctx, nil)
			Expect(errors.Is(err, ErrNilRequest)).To(BeTrue())
			Expect(reply.Type).To(Equal(ReplyType_REPLY_INVALID_ARGUMENT))
		})
	})

	Describe("Metrics", func() {
		It("counts requests and deque operations", func() {
			ms.slidingMax(ints(1, 3, -1, -3, 5, 3, 6, 7), 3)
			ms.slidingMax(ints(1, 2), 3)
			m := ms.server().metrics
			Expect(testutil.ToFloat64(m.requestsTotal.WithLabelValues(OpSlidingMax, "REPLY_OK"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.requestsTotal.WithLabelValues(OpSlidingMax, "REPLY_EMPTY"))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.dequeOpsTotal.WithLabelValues(OpSlidingMax, "push"))).To(Equal(8.0))

			count, err := testutil.GatherAndCount(ms.registry, "monowindow_requests_total")
			Expect(err).Should(BeNil())
			Expect(count).To(Equal(2))
		})
	})

	Describe("Concurrent callers", func() {
		Measure("measure sliding max", func(b Benchmarker) {
			runtime := b.Time("runtime", func() {
				rng := rand.New(rand.NewSource(1))
				nums := make([]int64, 10000)
				for i := range nums {
					nums[i] = rng.Int63n(1000)
				}
				var wg sync.WaitGroup
				for w := 0; w < 4; w++ {
					wg.Add(1)
					go func(k int64) {
						defer wg.Done()
						defer GinkgoRecover()
						reply, err := ms.service.SlidingMax(ctx, &WindowRequest{Series: ints(nums...), WindowSize: k})
						Expect(err).Should(BeNil())
						Expect(reply.Series.Len()).To(Equal(len(nums) - int(k) + 1))
					}(int64(10 * (w + 1)))
				}
				wg.Wait()
			})
			Expect(runtime.Seconds()).Should(BeNumerically("<", 2), "runtime must be short")
		}, 3)
	})
})
