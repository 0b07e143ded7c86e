package utility

import (
	"time"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

type ScanStats struct {
	// Accounts only the deque scan itself.
	AlgorithmRuntime time.Duration

	// Accounts for the whole request including argument checks, the optional
	// brute-force verification and bookkeeping.
	TotalRuntime time.Duration

	// Deque operations summed over every deque the scan used.
	Ops datastructure.OpStats

	// Number of input elements, or of positions pushed for prefix scans.
	Elements int

	// Number of deques the scan used.
	Deques int
}

// AmortizedOK reports whether the counters respect the amortized bound: every
// position is pushed at most once per deque and popped at most once.
func (s ScanStats) AmortizedOK() bool {
	deques := max(s.Deques, 1)
	return s.Ops.Pops() <= s.Ops.Pushes && s.Ops.Pushes <= s.Elements*deques
}
