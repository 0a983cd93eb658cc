package weight

import (
	"context"
	"log"

	"google.golang.org/api/fitness/v1"

	"github.com/sstent/gfitweight/internal/fit"
)

// DatasetWriter is the subset of fit.Client used by Importer.
type DatasetWriter interface {
	PatchDataset(ctx context.Context, dataSourceID, datasetID string, ds *fitness.Dataset) (*fitness.Dataset, error)
	GetDataset(ctx context.Context, dataSourceID, datasetID string) (*fitness.Dataset, error)
}

// ImportResult describes one completed import.
type ImportResult struct {
	DataSourceID string
	DatasetID    string
	MinNanos     int64
	MaxNanos     int64
	Sent         int
	// Verified is the dataset read back after the patch.
	Verified *fitness.Dataset
}

// Importer writes a batch of points as one dataset patch.
type Importer struct {
	API    DatasetWriter
	Logger *log.Logger
}

// NewImporter creates an Importer using api.
func NewImporter(api DatasetWriter) *Importer {
	return &Importer{API: api}
}

func (im *Importer) logger() *log.Logger {
	if im.Logger == nil {
		return log.Default()
	}
	return im.Logger
}

// Import patches every point into dataSourceID in a single call and reads the
// dataset back. The dataset id covers the full time range of points.
func (im *Importer) Import(ctx context.Context, dataSourceID string, points []Point) (*ImportResult, error) {
	minNs, maxNs, err := Bounds(points)
	if err != nil {
		return nil, err
	}
	if !Sorted(points) {
		im.logger().Printf("weight points are not in time order; dataset range taken from a full scan")
	}

	datasetID := fit.DatasetID(minNs, maxNs)
	body := &fitness.Dataset{
		DataSourceId:   dataSourceID,
		MinStartTimeNs: minNs,
		MaxEndTimeNs:   maxNs,
		Point:          DataPoints(points),
	}
	if _, err := im.API.PatchDataset(ctx, dataSourceID, datasetID, body); err != nil {
		return nil, err
	}

	res := &ImportResult{
		DataSourceID: dataSourceID,
		DatasetID:    datasetID,
		MinNanos:     minNs,
		MaxNanos:     maxNs,
		Sent:         len(points),
	}

	verified, err := im.API.GetDataset(ctx, dataSourceID, datasetID)
	if err != nil {
		return res, err
	}
	res.Verified = verified
	return res, nil
}
