package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"nickren/monowindow-go/pkg/windowservice"
)

func readInput(path string, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// parseSeries accepts a JSON array of numbers or numbers separated by
// whitespace and commas. The series is integral unless a value has a
// fraction or an exponent.
func parseSeries(raw []byte) (windowservice.Series, error) {
	var fields []string
	trimmed := bytes.TrimSpace(raw)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var numbers []json.Number
		if err := dec.Decode(&numbers); err != nil {
			return windowservice.Series{}, errors.Wrap(err, "decode json series")
		}
		for _, n := range numbers {
			fields = append(fields, n.String())
		}
	} else {
		fields = strings.FieldsFunc(string(trimmed), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
		})
	}

	integral := true
	for _, f := range fields {
		if strings.ContainsAny(f, ".eEnN") {
			integral = false
			break
		}
	}
	if integral {
		ints := make([]int64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return windowservice.Series{}, errors.Wrapf(err, "value %d", i)
			}
			ints[i] = v
		}
		return windowservice.Series{Ints: ints}, nil
	}
	floats := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return windowservice.Series{}, errors.Wrapf(err, "value %d", i)
		}
		floats[i] = v
	}
	return windowservice.Series{Floats: floats}, nil
}

// parsePoints accepts [[x,y],...] or a flat list x1 y1 x2 y2 ...
// isNestedJSON reports whether raw opens a JSON array whose first element is
// itself an array.
func isNestedJSON(raw []byte) bool {
	if !bytes.HasPrefix(raw, []byte("[")) {
		return false
	}
	return bytes.HasPrefix(bytes.TrimLeft(raw[1:], " \t\r\n"), []byte("["))
}

func parsePoints(raw []byte) ([]windowservice.PointPair, error) {
	trimmed := bytes.TrimSpace(raw)
	if isNestedJSON(trimmed) {
		var pairs [][2]float64
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, errors.Wrap(err, "decode json points")
		}
		points := make([]windowservice.PointPair, len(pairs))
		for i, p := range pairs {
			points[i] = windowservice.PointPair{X: p[0], Y: p[1]}
		}
		return points, nil
	}

	series, err := parseSeries(trimmed)
	if err != nil {
		return nil, err
	}
	flat := series.Floats
	if !series.IsFloat() {
		for _, v := range series.Ints {
			flat = append(flat, float64(v))
		}
	}
	if len(flat)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates: %d", len(flat))
	}
	points := make([]windowservice.PointPair, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		points = append(points, windowservice.PointPair{X: flat[i], Y: flat[i+1]})
	}
	return points, nil
}
