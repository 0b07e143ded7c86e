package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"nickren/monowindow-go/pkg/config"
	"nickren/monowindow-go/pkg/window/utility"
	"nickren/monowindow-go/pkg/windowservice"
)

var (
	configFile = flag.String("config", "", "yaml config file")
	envFile    = flag.String("env", ".env", "env file loaded before reading MONOWINDOW_* variables")
	op         = flag.String("op", "max", "max|min|shortest|constrained|jump|limit|equation")
	windowSize = flag.Int64("k", 3, "window size for max, min, constrained and jump")
	threshold  = flag.Float64("threshold", 0, "sum target for shortest, limit for limit, distance for equation")
	input      = flag.String("input", "-", "input file, - for stdin; positional arguments win")
	verify     = flag.Bool("verify", false, "cross-check the result with a brute-force scan")
	hist       = flag.Int("hist", 0, "histogram bins for series results, 0 disables")
	output     = flag.String("output", "text", "text|json")
	useColor   = flag.Bool("color", true, "colour text output")
	metrics    = flag.Bool("metrics", false, "print service metrics after the run")
)

var flagKeys = map[string]string{
	"op":        config.CFG_OP,
	"k":         config.CFG_WINDOW_SIZE,
	"threshold": config.CFG_THRESHOLD,
	"verify":    config.CFG_VERIFY,
	"hist":      config.CFG_HISTOGRAM_BINS,
	"output":    config.CFG_OUTPUT,
	"color":     config.CFG_COLOR,
}

func main() {
	flag.Parse()
	code := run()
	glog.Flush()
	os.Exit(code)
}

func run() int {
	overrides := map[string]interface{}{}
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.(flag.Getter).Get()
		}
	})
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: *configFile,
		EnvFiles:   []string{*envFile},
		Overrides:  overrides,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "monowindow:", err)
		return 2
	}
	color.NoColor = color.NoColor || !cfg.Color

	raw, err := readInput(*input, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "monowindow: read input:", err)
		return 2
	}

	reg := prometheus.NewRegistry()
	server := windowservice.NewWindowServer(windowservice.Options{
		MaxRuns:     cfg.MaxRuns,
		Registerer:  reg,
		IDGenerator: utility.NewIDGenerator(),
	})
	glog.V(1).Infof("monowindow: op %s, window %d, threshold %v, verify %v", cfg.Op, cfg.WindowSize, cfg.Threshold, cfg.Verify)

	ctx := context.Background()
	o, err := execute(ctx, server, cfg, raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "monowindow:", err)
		return 2
	}

	if cfg.Output == "json" {
		err = printJSON(os.Stdout, o)
	} else {
		err = printText(color.Output, o, cfg.HistogramBins)
	}
	if err != nil {
		glog.Errorf("monowindow: write output: %v", err)
	}
	if *metrics {
		if err := printMetrics(os.Stdout, reg); err != nil {
			glog.Errorf("monowindow: gather metrics: %v", err)
		}
	}

	if !o.ok {
		return 1
	}
	return 0
}

// execute parses the input for op and sends one request to the server. The
// returned error covers input that never reached the server.
func execute(ctx context.Context, server windowservice.WindowServer, cfg *config.Config, raw []byte) (*outcome, error) {
	o := &outcome{Op: cfg.Op}

	if cfg.Op == "equation" {
		points, err := parsePoints(raw)
		if err != nil {
			return nil, err
		}
		reply, err := server.MaxEquation(ctx, &windowservice.PointsRequest{Points: points, Distance: cfg.Threshold, Verify: cfg.Verify})
		o.setScalar(reply, err, false)
		o.attachStats(ctx, server, reply.RunUid)
		return o, nil
	}

	series, err := parseSeries(raw)
	if err != nil {
		return nil, err
	}
	window := &windowservice.WindowRequest{Series: series, WindowSize: cfg.WindowSize, Verify: cfg.Verify}
	bound := &windowservice.ThresholdRequest{Series: series, Threshold: cfg.Threshold, Verify: cfg.Verify}
	intResult := !series.IsFloat()

	var runUID uint64
	switch cfg.Op {
	case "max", "min":
		var reply *windowservice.SeriesReply
		if cfg.Op == "max" {
			reply, err = server.SlidingMax(ctx, window)
		} else {
			reply, err = server.SlidingMin(ctx, window)
		}
		o.setSeries(reply, err)
		runUID = reply.RunUid
	case "shortest", "limit":
		var reply *windowservice.ScalarReply
		if cfg.Op == "shortest" {
			reply, err = server.ShortestSubarray(ctx, bound)
		} else {
			reply, err = server.LongestWithinLimit(ctx, bound)
		}
		o.setScalar(reply, err, true)
		runUID = reply.RunUid
	case "constrained", "jump":
		var reply *windowservice.ScalarReply
		if cfg.Op == "constrained" {
			reply, err = server.ConstrainedSum(ctx, window)
		} else {
			reply, err = server.MaxJump(ctx, window)
		}
		o.setScalar(reply, err, intResult)
		runUID = reply.RunUid
	default:
		return nil, errors.Errorf("unknown op %q", cfg.Op)
	}
	o.attachStats(ctx, server, runUID)
	return o, nil
}

func (o *outcome) setReply(t windowservice.ReplyType, runUID uint64, err error) {
	o.Type = t.String()
	o.RunUID = utility.RunID(runUID).String()
	o.ok = t == windowservice.ReplyType_REPLY_OK || t == windowservice.ReplyType_REPLY_EMPTY
	if err != nil {
		o.Error = err.Error()
	}
}

func (o *outcome) setSeries(reply *windowservice.SeriesReply, err error) {
	o.setReply(reply.Type, reply.RunUid, err)
	if !o.ok {
		return
	}
	if reply.Series.IsFloat() {
		o.Result = reply.Series.Floats
		o.values = reply.Series.Floats
		return
	}
	o.Result = reply.Series.Ints
	o.values = make([]float64, len(reply.Series.Ints))
	for i, v := range reply.Series.Ints {
		o.values[i] = float64(v)
	}
}

func (o *outcome) setScalar(reply *windowservice.ScalarReply, err error, integral bool) {
	o.setReply(reply.Type, reply.RunUid, err)
	if reply.Type != windowservice.ReplyType_REPLY_OK && reply.Type != windowservice.ReplyType_REPLY_EMPTY {
		return
	}
	if integral {
		o.Result = reply.IntValue
	} else {
		o.Result = reply.Value
	}
}

func (o *outcome) attachStats(ctx context.Context, server windowservice.WindowServer, runUID uint64) {
	reply, err := server.RunStats(ctx, &windowservice.RunUID{RunUid: runUID})
	if err != nil || reply.Type != windowservice.ReplyType_REPLY_OK {
		glog.Warningf("monowindow: no stats for run %d: %v", runUID, err)
		return
	}
	o.Stats = &reply.Stats
}
