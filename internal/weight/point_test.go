package weight_test

import (
	"errors"
	"math"
	"testing"

	"github.com/sstent/gfitweight/internal/fit"
	"github.com/sstent/gfitweight/internal/weight"
)

func pt(t int64, v float64) weight.Point {
	return weight.Point{StartTimeNanos: t, EndTimeNanos: t, Value: v}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name     string
		points   []weight.Point
		min, max int64
	}{
		{"sorted", []weight.Point{pt(100, 70.1), pt(200, 70.3), pt(300, 70.0)}, 100, 300},
		{"single", []weight.Point{pt(42, 80)}, 42, 42},
		{"unsorted", []weight.Point{pt(200, 70.3), pt(300, 70.0), pt(100, 70.1)}, 100, 300},
		{"end after start", []weight.Point{{StartTimeNanos: 100, EndTimeNanos: 150}, pt(120, 1)}, 100, 150},
		{"zero end", []weight.Point{{StartTimeNanos: 100}, {StartTimeNanos: 300}}, 100, 300},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi, err := weight.Bounds(tc.points)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lo != tc.min || hi != tc.max {
				t.Fatalf("got (%d, %d), want (%d, %d)", lo, hi, tc.min, tc.max)
			}
			if lo > hi {
				t.Fatalf("min %d > max %d", lo, hi)
			}
		})
	}
}

func TestBounds_Empty(t *testing.T) {
	if _, _, err := weight.Bounds(nil); !errors.Is(err, weight.ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints, got %v", err)
	}
}

func TestSorted(t *testing.T) {
	if !weight.Sorted([]weight.Point{pt(1, 0), pt(1, 0), pt(2, 0)}) {
		t.Error("expected sorted")
	}
	if weight.Sorted([]weight.Point{pt(2, 0), pt(1, 0)}) {
		t.Error("expected unsorted")
	}
}

func TestDataPoints(t *testing.T) {
	dps := weight.DataPoints([]weight.Point{pt(100, 70.1), {StartTimeNanos: 200, Value: 71}})
	if len(dps) != 2 {
		t.Fatalf("len = %d", len(dps))
	}
	if dps[0].DataTypeName != fit.WeightDataType || dps[0].StartTimeNanos != 100 || dps[0].EndTimeNanos != 100 {
		t.Fatalf("unexpected point: %+v", dps[0])
	}
	if len(dps[0].Value) != 1 || dps[0].Value[0].FpVal != 70.1 {
		t.Fatalf("unexpected value: %+v", dps[0].Value)
	}
	if dps[1].EndTimeNanos != 200 {
		t.Fatalf("end should default to start, got %d", dps[1].EndTimeNanos)
	}
}

func TestToKilograms(t *testing.T) {
	if got := weight.ToKilograms(220.46226218, "lb"); math.Abs(got-100) > 0.001 {
		t.Errorf("lb: got %v", got)
	}
	if got := weight.ToKilograms(80, "kg"); got != 80 {
		t.Errorf("kg: got %v", got)
	}
	if got := weight.ToKilograms(12, "st"); got != 12 {
		t.Errorf("unknown unit: got %v", got)
	}
}
