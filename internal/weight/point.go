// Package weight imports scale measurements into a Fit dataset and deletes them again.
package weight

import (
	"errors"

	"google.golang.org/api/fitness/v1"

	"github.com/sstent/gfitweight/internal/fit"
)

// ErrNoPoints is returned when there is nothing to import.
var ErrNoPoints = errors.New("no weight points")

const kgToLb = 2.2046226218

// Point is a single weight measurement in kilograms.
type Point struct {
	StartTimeNanos int64   `json:"startTimeNanos"`
	EndTimeNanos   int64   `json:"endTimeNanos"`
	Value          float64 `json:"value"`
}

func (p Point) end() int64 {
	if p.EndTimeNanos > p.StartTimeNanos {
		return p.EndTimeNanos
	}
	return p.StartTimeNanos
}

// Bounds returns the earliest start and the latest end over all points. The
// input does not need to be sorted.
func Bounds(points []Point) (minNanos, maxNanos int64, err error) {
	if len(points) == 0 {
		return 0, 0, ErrNoPoints
	}
	minNanos, maxNanos = points[0].StartTimeNanos, points[0].end()
	for _, p := range points[1:] {
		if p.StartTimeNanos < minNanos {
			minNanos = p.StartTimeNanos
		}
		if e := p.end(); e > maxNanos {
			maxNanos = e
		}
	}
	return minNanos, maxNanos, nil
}

// Sorted reports whether points are in ascending start-time order.
func Sorted(points []Point) bool {
	for i := 1; i < len(points); i++ {
		if points[i].StartTimeNanos < points[i-1].StartTimeNanos {
			return false
		}
	}
	return true
}

// DataPoints converts points to the Fit weight point schema.
func DataPoints(points []Point) []*fitness.DataPoint {
	out := make([]*fitness.DataPoint, 0, len(points))
	for _, p := range points {
		out = append(out, &fitness.DataPoint{
			DataTypeName:   fit.WeightDataType,
			StartTimeNanos: p.StartTimeNanos,
			EndTimeNanos:   p.end(),
			Value:          []*fitness.Value{{FpVal: p.Value}},
		})
	}
	return out
}

// ToKilograms converts v from unit ("kg" or "lb") to kilograms.
// Unknown units are returned unchanged.
func ToKilograms(v float64, unit string) float64 {
	if unit == "lb" {
		return v / kgToLb
	}
	return v
}
