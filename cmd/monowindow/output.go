package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"nickren/monowindow-go/pkg/window/algorithms/utils"
	"nickren/monowindow-go/pkg/window/utility"
	"nickren/monowindow-go/pkg/windowservice"
)

type outcome struct {
	Op     string             `json:"op"`
	Type   string             `json:"type"`
	RunUID string             `json:"run_uid"`
	Result interface{}        `json:"result"`
	Error  string             `json:"error,omitempty"`
	Stats  *utility.ScanStats `json:"stats,omitempty"`

	// series results, kept for the histogram
	values []float64
	ok     bool
}

func typeColor(t string) *color.Color {
	switch t {
	case windowservice.ReplyType_REPLY_OK.String():
		return color.New(color.FgGreen)
	case windowservice.ReplyType_REPLY_EMPTY.String():
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}

func printText(w io.Writer, o *outcome, bins int) error {
	hb := color.New(color.FgHiBlack)
	fmt.Fprintf(w, "%s %s %s\n", color.New(color.FgHiBlue).Sprint(o.Op), typeColor(o.Type).Sprint(o.Type), hb.Sprintf("run %s", o.RunUID))
	if o.Error != "" {
		fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed).Sprint("error:"), o.Error)
	}
	if o.Result != nil {
		fmt.Fprintf(w, "%s %v\n", color.New(color.FgYellow).Sprint("result:"), o.Result)
	}
	if o.Stats != nil {
		s := o.Stats
		fmt.Fprintln(w, hb.Sprintf("elements %d, pushes %d, dominance pops %d, stale pops %d, scan %v, total %v",
			s.Elements, s.Ops.Pushes, s.Ops.DominancePops, s.Ops.StalePops, s.AlgorithmRuntime, s.TotalRuntime))
	}
	if bins > 0 && o.values != nil {
		return utils.ExamSeries(w, o.values, bins)
	}
	return nil
}

func printJSON(w io.Writer, o *outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

// printMetrics writes the gathered families in the Prometheus text exposition
// format.
func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
