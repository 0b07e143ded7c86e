package utils

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"

	"nickren/monowindow-go/pkg/window/algorithms/datastructure"
)

// ToFloat64s converts a result series for reporting.
func ToFloat64s[V datastructure.Number](values []V) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// SeriesSummary is the min/max/mean of a result series.
type SeriesSummary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

func Summarize(values []float64) SeriesSummary {
	s := SeriesSummary{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Min, s.Max = values[0], values[0]
	var sum float64
	for _, v := range values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(values))
	return s
}

// ExamSeries prints a summary line and a text histogram of the series.
func ExamSeries(w io.Writer, values []float64, bins int) error {
	s := Summarize(values)
	if s.Count == 0 {
		_, err := fmt.Fprintln(w, "empty series, nothing to plot")
		return err
	}
	if _, err := fmt.Fprintf(w, "%d values, min %v, max %v, mean %.4f\n", s.Count, s.Min, s.Max, s.Mean); err != nil {
		return err
	}
	if bins <= 0 {
		return nil
	}

	hist := histogram.Hist(bins, values)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
