package weight_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sstent/gfitweight/internal/weight"
)

const withingsExport = `Date,"Weight (kg)","Fat mass (kg)","Bone mass (kg)","Muscle mass (kg)",Comments
"2019-01-03 07:30:00",70.0,,,,
"2019-01-02 07:31:12",70.3,12.1,,,
"2019-01-01 07:29:45",70.1,,,,
`

func TestReadCSV_Withings(t *testing.T) {
	points, err := weight.ReadCSV(strings.NewReader(withingsExport), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("len = %d", len(points))
	}
	want := []struct {
		at time.Time
		v  float64
	}{
		{time.Date(2019, 1, 1, 7, 29, 45, 0, time.UTC), 70.1},
		{time.Date(2019, 1, 2, 7, 31, 12, 0, time.UTC), 70.3},
		{time.Date(2019, 1, 3, 7, 30, 0, 0, time.UTC), 70.0},
	}
	for i, w := range want {
		p := points[i]
		if p.StartTimeNanos != w.at.UnixNano() || p.EndTimeNanos != p.StartTimeNanos {
			t.Errorf("point %d time = %d/%d, want %d", i, p.StartTimeNanos, p.EndTimeNanos, w.at.UnixNano())
		}
		if p.Value != w.v {
			t.Errorf("point %d value = %v, want %v", i, p.Value, w.v)
		}
	}
	if !weight.Sorted(points) {
		t.Fatal("points should be oldest first")
	}
}

func TestReadCSV_Location(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	points, err := weight.ReadCSV(strings.NewReader("date,weight\n2020-06-01 10:00,80.5\n"), loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC).UnixNano()
	if points[0].StartTimeNanos != want {
		t.Fatalf("got %d, want %d", points[0].StartTimeNanos, want)
	}
}

func TestReadCSV_Pounds(t *testing.T) {
	points, err := weight.ReadCSV(strings.NewReader("Timestamp,Weight (lb)\n2020-06-01T10:00:00Z,220.46226218\n"), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(points[0].Value-100) > 0.001 {
		t.Fatalf("value = %v, want ~100 kg", points[0].Value)
	}
}

func TestReadCSV_SkipsBlankWeights(t *testing.T) {
	in := "\ufeffDate,Weight\n2020-01-01,\n2020-01-02,\"81,2\"\n"
	points, err := weight.ReadCSV(strings.NewReader(in), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Value != 81.2 {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		noPoints bool
		contains string
	}{
		{"empty", "", true, ""},
		{"header only", "Date,Weight\n", true, ""},
		{"no weight column", "Date,Fat\n2020-01-01,12\n", false, "no weight column"},
		{"no date column", "When,Weight\n2020-01-01,80\n", false, "no date column"},
		{"bad date", "Date,Weight\n2020-01-01,80\nyesterday,81\n", false, "line 3"},
		{"bad weight", "Date,Weight\n2020-01-01,heavy\n", false, "invalid weight"},
		{"negative weight", "Date,Weight\n2020-01-01,-3\n", false, "invalid weight"},
		{"nan weight", "Date,Weight\n2020-01-01,NaN\n", false, "invalid weight"},
		{"infinite weight", "Date,Weight\n2020-01-01,+Inf\n", false, "invalid weight"},
		{"infinite weight on later row", "Date,Weight\n2020-01-01,80\n2020-01-02,Inf\n", false, "line 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := weight.ReadCSV(strings.NewReader(tc.in), time.UTC)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.noPoints != errors.Is(err, weight.ErrNoPoints) {
				t.Fatalf("ErrNoPoints mismatch: %v", err)
			}
			if tc.contains != "" && !strings.Contains(err.Error(), tc.contains) {
				t.Fatalf("error %q does not contain %q", err, tc.contains)
			}
		})
	}
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.csv")
	if err := os.WriteFile(path, []byte(withingsExport), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	points, err := weight.ReadCSVFile(path, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("len = %d", len(points))
	}

	if _, err := weight.ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"), time.UTC); err == nil {
		t.Fatal("expected error for missing file")
	}
}
