package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"nickren/monowindow-go/pkg/config"
	"nickren/monowindow-go/pkg/window/utility"
	"nickren/monowindow-go/pkg/windowservice"
)

func TestParseSeries(t *testing.T) {
	s, err := parseSeries([]byte("[1, 3, -1]"))
	if err != nil || s.IsFloat() || len(s.Ints) != 3 || s.Ints[2] != -1 {
		t.Errorf("json ints: %+v %v", s, err)
	}
	s, err = parseSeries([]byte("0.5, 2\n-3e1"))
	if err != nil || !s.IsFloat() || s.Floats[2] != -30 {
		t.Errorf("plain floats: %+v %v", s, err)
	}
	s, err = parseSeries([]byte("  "))
	if err != nil || s.Len() != 0 {
		t.Errorf("blank input: %+v %v", s, err)
	}
	if _, err := parseSeries([]byte("1 two 3")); err == nil {
		t.Errorf("expected error for a non-number")
	}
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]byte("[[1,3],[2,0],[5,10],[6,-10]]"))
	if err != nil || len(points) != 4 || points[3] != (windowservice.PointPair{X: 6, Y: -10}) {
		t.Errorf("json points: %v %v", points, err)
	}
	points, err = parsePoints([]byte(" [ [1, 3] ,\n  [2, 0] ]"))
	if err != nil || len(points) != 2 || points[1] != (windowservice.PointPair{X: 2, Y: 0}) {
		t.Errorf("spaced json points: %v %v", points, err)
	}
	points, err = parsePoints([]byte("1 3 2 0"))
	if err != nil || len(points) != 2 || points[1].X != 2 {
		t.Errorf("flat points: %v %v", points, err)
	}
	if _, err := parsePoints([]byte("1 3 2")); err == nil {
		t.Errorf("expected error for odd coordinates")
	}
}

func newTestServer() (windowservice.WindowServer, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return windowservice.NewWindowServer(windowservice.Options{
		Registerer:  reg,
		IDGenerator: utility.NewIDGeneratorWithInt(1),
	}), reg
}

func TestExecute(t *testing.T) {
	server, reg := newTestServer()
	ctx := context.Background()
	cases := []struct {
		cfg    config.Config
		input  string
		result string
		ok     bool
	}{
		{config.Config{Op: "max", WindowSize: 3, Verify: true}, "1 3 -1 -3 5 3 6 7", "[3 3 5 5 6 7]", true},
		{config.Config{Op: "min", WindowSize: 2}, "[1,2,3]", "[1 2]", true},
		{config.Config{Op: "shortest", Threshold: 3}, "2 -1 2", "3", true},
		{config.Config{Op: "shortest", Threshold: 4}, "1 2", "-1", true},
		{config.Config{Op: "constrained", WindowSize: 2}, "10 2 -10 5 20", "37", true},
		{config.Config{Op: "jump", WindowSize: 2}, "1 -1 -2 4 -7 3", "7", true},
		{config.Config{Op: "limit", Threshold: 4}, "8 2 4 7", "2", true},
		{config.Config{Op: "equation", Threshold: 1}, "[[1,3],[2,0],[5,10],[6,-10]]", "4", true},
		{config.Config{Op: "max", WindowSize: 0}, "1 2", "<nil>", false},
	}
	for _, c := range cases {
		cfg := c.cfg
		o, err := execute(ctx, server, &cfg, []byte(c.input))
		if err != nil {
			t.Fatalf("%s: %v", c.cfg.Op, err)
		}
		if got := fmt.Sprint(o.Result); got != c.result || o.ok != c.ok {
			t.Errorf("%s %q: got %s ok=%v (%s), want %s ok=%v", c.cfg.Op, c.input, got, o.ok, o.Type, c.result, c.ok)
		}
		if o.Stats == nil {
			t.Errorf("%s: stats missing", c.cfg.Op)
		}
	}

	var buf bytes.Buffer
	if err := printMetrics(&buf, reg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "# TYPE monowindow_requests_total counter\n") ||
		!strings.Contains(buf.String(), `monowindow_requests_total{op="sliding_max",type="REPLY_OK"} 1`) {
		t.Errorf("metrics output:\n%s", buf.String())
	}
}

func TestPrintOutcome(t *testing.T) {
	color.NoColor = true
	o := &outcome{Op: "max", Type: "REPLY_OK", RunUID: "7", Result: []int64{3, 5}, values: []float64{3, 5}, ok: true}
	var buf bytes.Buffer
	if err := printText(&buf, o, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "max REPLY_OK run 7") || !strings.Contains(buf.String(), "2 values") {
		t.Errorf("text output:\n%s", buf.String())
	}

	buf.Reset()
	if err := printJSON(&buf, o); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"run_uid": "7"`) {
		t.Errorf("json output:\n%s", buf.String())
	}
}
