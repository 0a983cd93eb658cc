// Package fittest provides an in-memory Google Fitness REST server for tests.
package fittest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/api/fitness/v1"

	"github.com/sstent/gfitweight/internal/fit"
)

// BasePath is the path prefix the server answers under.
const BasePath = "/fitness/v1/users/"

// Server fakes the dataSources and datasets endpoints.
type Server struct {
	*httptest.Server

	// ProjectID is used to assign stream ids to created sources.
	ProjectID string

	mu       sync.Mutex
	sources  []*fitness.DataSource
	datasets map[string]*fitness.Dataset
	calls    []string
	deletes  []string
	apiKeys  []string
	failures map[string]int
}

// NewServer starts a fake server. Call Close when done.
func NewServer(projectID string) *Server {
	s := &Server{
		ProjectID: projectID,
		datasets:  make(map[string]*fitness.Dataset),
		failures:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Endpoint is the value for option.WithEndpoint.
func (s *Server) Endpoint() string {
	return s.URL + BasePath
}

// AddSource seeds an existing data source.
func (s *Server) AddSource(ds *fitness.DataSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, ds)
}

// Fail makes every call of op ("list", "create", "patch", "get", "delete")
// answer with status.
func (s *Server) Fail(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

// Calls returns the operations served so far, in order.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Count returns how many times op was called.
func (s *Server) Count(op string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// Deletes returns "sourceID/datasetID" for every delete call.
func (s *Server) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

// Sources returns the registered data sources.
func (s *Server) Sources() []*fitness.DataSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fitness.DataSource(nil), s.sources...)
}

// Dataset returns the stored dataset for a source and dataset id.
func (s *Server) Dataset(sourceID, datasetID string) (*fitness.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.datasets[sourceID+"/"+datasetID]
	return ds, ok
}

// APIKeys returns the key query parameter of each request.
func (s *Server) APIKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.apiKeys...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, BasePath) {
		writeError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
		return
	}
	segs := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, BasePath), "/"), "/")
	if len(segs) < 2 || segs[1] != "dataSources" {
		writeError(w, http.StatusNotFound, "unknown path "+r.URL.Path)
		return
	}
	rest := segs[2:]

	var op string
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		op = "list"
	case len(rest) == 0 && r.Method == http.MethodPost:
		op = "create"
	case len(rest) == 3 && rest[1] == "datasets" && r.Method == http.MethodPatch:
		op = "patch"
	case len(rest) == 3 && rest[1] == "datasets" && r.Method == http.MethodGet:
		op = "get"
	case len(rest) == 3 && rest[1] == "datasets" && r.Method == http.MethodDelete:
		op = "delete"
	default:
		writeError(w, http.StatusNotFound, r.Method+" "+r.URL.Path)
		return
	}

	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.apiKeys = append(s.apiKeys, r.URL.Query().Get("key"))
	status, failing := s.failures[op]
	s.mu.Unlock()
	if failing {
		writeError(w, status, op+" rejected")
		return
	}

	switch op {
	case "list":
		s.mu.Lock()
		resp := &fitness.ListDataSourcesResponse{DataSource: s.sources}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, resp)

	case "create":
		var ds fitness.DataSource
		if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ds.DataStreamId = fit.DataSourceID(&ds, s.ProjectID)
		s.AddSource(&ds)
		writeJSON(w, http.StatusOK, &ds)

	case "patch":
		var ds fitness.Dataset
		if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.mu.Lock()
		s.datasets[rest[0]+"/"+rest[2]] = &ds
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, &ds)

	case "get":
		s.mu.Lock()
		ds, ok := s.datasets[rest[0]+"/"+rest[2]]
		s.mu.Unlock()
		if !ok {
			ds = emptyDataset(rest[0], rest[2])
		}
		writeJSON(w, http.StatusOK, ds)

	case "delete":
		s.mu.Lock()
		s.deletes = append(s.deletes, rest[0]+"/"+rest[2])
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func emptyDataset(sourceID, datasetID string) *fitness.Dataset {
	ds := &fitness.Dataset{DataSourceId: sourceID}
	if lo, hi, ok := strings.Cut(datasetID, "-"); ok {
		ds.MinStartTimeNs, _ = strconv.ParseInt(lo, 10, 64)
		ds.MaxEndTimeNs, _ = strconv.ParseInt(hi, 10, 64)
	}
	return ds
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": status, "message": msg},
	})
}
