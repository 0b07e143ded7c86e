package windowservice

import (
	"context"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"nickren/monowindow-go/pkg/window/utility"
)

type MockService struct {
	service  WindowServer
	registry *prometheus.Registry
}

func newMockService(maxRuns int) *MockService {
	reg := prometheus.NewRegistry()
	return &MockService{
		service: NewWindowServer(Options{
			MaxRuns:     maxRuns,
			Registerer:  reg,
			IDGenerator: utility.NewIDGeneratorWithString("windowservice"),
		}),
		registry: reg,
	}
}

func (ms *MockService) server() *windowServer {
	return ms.service.(*windowServer)
}

func ints(values ...int64) Series {
	return Series{Ints: values}
}

func floats(values ...float64) Series {
	return Series{Floats: values}
}

func (ms *MockService) slidingMax(series Series, k int64) *SeriesReply {
	reply, err := ms.service.SlidingMax(context.Background(), &WindowRequest{Series: series, WindowSize: k, Verify: true})
	Expect(err).Should(BeNil())
	return reply
}

func (ms *MockService) scalar(reply *ScalarReply, err error) *ScalarReply {
	Expect(err).Should(BeNil())
	Expect(reply.Type).To(Equal(ReplyType_REPLY_OK))
	return reply
}

func (ms *MockService) runStats(uid uint64) *StatsReply {
	reply, err := ms.service.RunStats(context.Background(), &RunUID{RunUid: uid})
	Expect(err).Should(BeNil())
	return reply
}
