package weight

import (
	"context"

	"github.com/sstent/gfitweight/internal/fit"
)

// SourceLookup finds the existing weight data source.
type SourceLookup interface {
	Lookup(ctx context.Context) (string, error)
}

// DatasetDeleter is the subset of fit.Client used by Deleter.
type DatasetDeleter interface {
	DeleteDataset(ctx context.Context, dataSourceID, datasetID string) error
}

// DeleteResult describes one completed deletion.
type DeleteResult struct {
	DataSourceID string
	DatasetID    string
}

// Deleter removes all weight points from the account's weight source.
type Deleter struct {
	Sources SourceLookup
	API     DatasetDeleter
	// Found, if set, is called with the source id before deleting.
	Found func(id string)
}

// NewDeleter creates a Deleter.
func NewDeleter(sources SourceLookup, api DatasetDeleter) *Deleter {
	return &Deleter{Sources: sources, API: api}
}

// Delete issues one delete over fit.AllTimeDatasetID. When no weight source
// exists it returns fit.ErrNoWeightSource without calling delete.
func (d *Deleter) Delete(ctx context.Context) (*DeleteResult, error) {
	id, err := d.Sources.Lookup(ctx)
	if err != nil {
		return nil, err
	}
	if d.Found != nil {
		d.Found(id)
	}
	if err := d.API.DeleteDataset(ctx, id, fit.AllTimeDatasetID); err != nil {
		return nil, err
	}
	return &DeleteResult{DataSourceID: id, DatasetID: fit.AllTimeDatasetID}, nil
}
