package windowservice

import (
	"sync"

	"github.com/gammazero/deque"
	cmap "github.com/orcaman/concurrent-map/v2"

	"nickren/monowindow-go/pkg/window/utility"
)

// RunRecord is what the service remembers about a finished run.
type RunRecord struct {
	Op     string
	Result ReplyType
	Stats  utility.ScanStats
}

// runRegistry keeps the records of the last maxRuns runs. Lookups go straight
// to the concurrent map; the insertion order is only touched under mu.
type runRegistry struct {
	runs cmap.ConcurrentMap[string, RunRecord]

	mu      sync.Mutex
	order   deque.Deque[utility.RunID]
	maxRuns int
}

func newRunRegistry(maxRuns int) *runRegistry {
	return &runRegistry{
		runs:    cmap.New[RunRecord](),
		maxRuns: maxRuns,
	}
}

func (r *runRegistry) Add(id utility.RunID, rec RunRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.runs.Has(id.String()) {
		r.order.PushBack(id)
	}
	r.runs.Set(id.String(), rec)
	for r.order.Len() > r.maxRuns {
		oldest := r.order.PopFront()
		r.runs.Remove(oldest.String())
	}
}

func (r *runRegistry) Get(id utility.RunID) (RunRecord, bool) {
	return r.runs.Get(id.String())
}

func (r *runRegistry) Count() int {
	return r.runs.Count()
}
