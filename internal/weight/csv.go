package weight

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var timeHeaders = map[string]bool{"date": true, "time": true, "datetime": true, "timestamp": true}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string, loc *time.Location) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weight csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, loc)
}

// ReadCSV parses a scale export with a header row. The first column named
// date/time/datetime/timestamp holds the measurement time and the first
// column whose name starts with "weight" holds the value. Pound columns are
// converted to kilograms. Points are returned oldest first.
func ReadCSV(r io.Reader, loc *time.Location) ([]Point, error) {
	if loc == nil {
		loc = time.Local
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: csv is empty", ErrNoPoints)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	timeCol, weightCol, unit := -1, -1, "kg"
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if timeCol < 0 && timeHeaders[name] {
			timeCol = i
		}
		if weightCol < 0 && strings.HasPrefix(name, "weight") {
			weightCol = i
			if strings.Contains(name, "(lb") || strings.HasSuffix(name, " lb") || strings.HasSuffix(name, " lbs") {
				unit = "lb"
			}
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("csv header has no date column: %v", header)
	}
	if weightCol < 0 {
		return nil, fmt.Errorf("csv header has no weight column: %v", header)
	}

	var points []Point
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if weightCol >= len(rec) || strings.TrimSpace(rec[weightCol]) == "" {
			continue
		}
		if timeCol >= len(rec) {
			return nil, fmt.Errorf("line %d: missing date", line)
		}

		ts, err := parseTime(rec[timeCol], loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		v, err := parseWeight(rec[weightCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ns := ts.UnixNano()
		points = append(points, Point{StartTimeNanos: ns, EndTimeNanos: ns, Value: ToKilograms(v, unit)})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: csv has no weight rows", ErrNoPoints)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].StartTimeNanos < points[j].StartTimeNanos
	})
	return points, nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	return v, nil
}
