package fit

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/fitness/v1"
)

// ErrNoWeightSource means the account has no weight data source. It is a
// normal outcome for deletion, not a failure.
var ErrNoWeightSource = errors.New("no weight data source found")

// DataSourceAPI is the subset of Client used to resolve data sources.
type DataSourceAPI interface {
	ListDataSources(ctx context.Context) ([]*fitness.DataSource, error)
	CreateDataSource(ctx context.Context, ds *fitness.DataSource) (*fitness.DataSource, error)
}

// CreatePolicy decides what happens when registering a new data source fails.
type CreatePolicy int

const (
	// BestEffort logs the failure and continues with the computed id; the
	// following patch may create the source implicitly.
	BestEffort CreatePolicy = iota
	// Strict aborts with the create error.
	Strict
)

func (p CreatePolicy) String() string {
	switch p {
	case BestEffort:
		return "best-effort"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("CreatePolicy(%d)", int(p))
	}
}

// Origin records how a data source id was obtained.
type Origin int

const (
	// OriginExisting: adopted from an existing weight source.
	OriginExisting Origin = iota
	// OriginCreated: computed and registered successfully.
	OriginCreated
	// OriginComputed: computed, not confirmed registered.
	OriginComputed
)

func (o Origin) String() string {
	switch o {
	case OriginExisting:
		return "existing"
	case OriginCreated:
		return "created"
	case OriginComputed:
		return "computed"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Resolution is the outcome of ResolveForImport.
type Resolution struct {
	ID     string
	Origin Origin
	// Err holds the swallowed list or create error, if any.
	Err error
}

// Resolver locates or registers the weight data source.
type Resolver struct {
	API       DataSourceAPI
	ProjectID string
	Source    *fitness.DataSource
	Policy    CreatePolicy
	Logger    *log.Logger
}

// NewResolver creates a Resolver for the static weight descriptor.
func NewResolver(api DataSourceAPI, projectID string) *Resolver {
	return &Resolver{
		API:       api,
		ProjectID: projectID,
		Source:    WeightDataSource(),
		Policy:    BestEffort,
	}
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// ComputedID returns the deterministic id of the static descriptor.
func (r *Resolver) ComputedID() string {
	return DataSourceID(r.Source, r.ProjectID)
}

// ResolveForImport returns the id to write weight points to. It only fails
// when the create policy is Strict and registration fails.
func (r *Resolver) ResolveForImport(ctx context.Context) (Resolution, error) {
	computed := r.ComputedID()

	sources, err := r.API.ListDataSources(ctx)
	if err != nil {
		r.logger().Printf("error checking data sources, using computed id %s: %v", computed, err)
		return Resolution{ID: computed, Origin: OriginComputed, Err: err}, nil
	}

	if id, ok := FindWeightSource(sources); ok {
		return Resolution{ID: id, Origin: OriginExisting}, nil
	}

	if _, err := r.API.CreateDataSource(ctx, r.Source); err != nil {
		if r.Policy == Strict {
			return Resolution{}, wrapOnce(ErrDataSourceCreate, err)
		}
		r.logger().Printf("error creating data source, continuing with %s: %v", computed, err)
		return Resolution{ID: computed, Origin: OriginComputed, Err: err}, nil
	}
	return Resolution{ID: computed, Origin: OriginCreated}, nil
}

// Lookup returns the id of an existing weight source, or ErrNoWeightSource.
func (r *Resolver) Lookup(ctx context.Context) (string, error) {
	sources, err := r.API.ListDataSources(ctx)
	if err != nil {
		return "", wrapOnce(ErrDataSourceList, err)
	}
	id, ok := FindWeightSource(sources)
	if !ok {
		return "", ErrNoWeightSource
	}
	return id, nil
}

func wrapOnce(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
