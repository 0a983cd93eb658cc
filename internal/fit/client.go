// Package fit wraps the Google Fitness REST API for weight data sources and datasets.
package fit

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/fitness/v1"
	"google.golang.org/api/option"
)

var (
	// ErrDataSourceList is returned when the user's data sources cannot be listed.
	ErrDataSourceList = errors.New("failed to list data sources")
	// ErrDataSourceCreate is returned when the weight data source cannot be created.
	ErrDataSourceCreate = errors.New("failed to create data source")
	// ErrDatasetWrite is returned when a patch of points is rejected.
	ErrDatasetWrite = errors.New("failed to write dataset")
	// ErrDatasetRead is returned when a dataset cannot be read back.
	ErrDatasetRead = errors.New("failed to read dataset")
	// ErrDatasetDelete is returned when a dataset range cannot be deleted.
	ErrDatasetDelete = errors.New("failed to delete dataset")
)

// DefaultUserID addresses the authenticated user.
const DefaultUserID = "me"

// Client represents a Google Fitness API client bound to one user
type Client struct {
	svc    *fitness.Service
	userID string
}

// NewClient creates a Fitness client that sends requests through httpClient.
// Extra options (an endpoint override in tests) are applied after it.
func NewClient(ctx context.Context, httpClient *http.Client, userID string, opts ...option.ClientOption) (*Client, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := fitness.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness service: %w", err)
	}
	return &Client{svc: svc, userID: userID}, nil
}

// ListDataSources returns every data source registered for the user, in API order.
func (c *Client) ListDataSources(ctx context.Context) ([]*fitness.DataSource, error) {
	resp, err := c.svc.Users.DataSources.List(c.userID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceList, err)
	}
	return resp.DataSource, nil
}

// CreateDataSource registers ds for the user.
func (c *Client) CreateDataSource(ctx context.Context, ds *fitness.DataSource) (*fitness.DataSource, error) {
	created, err := c.svc.Users.DataSources.Create(c.userID, ds).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceCreate, err)
	}
	return created, nil
}

// PatchDataset adds the points in ds to the dataset datasetID of dataSourceID.
func (c *Client) PatchDataset(ctx context.Context, dataSourceID, datasetID string, ds *fitness.Dataset) (*fitness.Dataset, error) {
	out, err := c.svc.Users.DataSources.Datasets.Patch(c.userID, dataSourceID, datasetID, ds).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDatasetWrite, datasetID, err)
	}
	return out, nil
}

// GetDataset reads back the dataset datasetID of dataSourceID.
func (c *Client) GetDataset(ctx context.Context, dataSourceID, datasetID string) (*fitness.Dataset, error) {
	out, err := c.svc.Users.DataSources.Datasets.Get(c.userID, dataSourceID, datasetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDatasetRead, datasetID, err)
	}
	return out, nil
}

// DeleteDataset removes every point of dataSourceID inside the datasetID range.
func (c *Client) DeleteDataset(ctx context.Context, dataSourceID, datasetID string) error {
	if err := c.svc.Users.DataSources.Datasets.Delete(c.userID, dataSourceID, datasetID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDatasetDelete, datasetID, err)
	}
	return nil
}
