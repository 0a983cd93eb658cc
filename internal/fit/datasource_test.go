package fit_test

import (
	"testing"

	"google.golang.org/api/fitness/v1"

	"github.com/sstent/gfitweight/internal/fit"
)

func TestDataSourceID(t *testing.T) {
	got := fit.DataSourceID(fit.WeightDataSource(), "my-project")
	want := "raw:com.google.weight:my-project:withings:smart-body-analyzer:ws-50"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if again := fit.DataSourceID(fit.WeightDataSource(), "my-project"); again != got {
		t.Fatalf("not deterministic: %q vs %q", again, got)
	}
}

func TestDataSourceID_FieldOrder(t *testing.T) {
	ds := &fitness.DataSource{
		Type:     "derived",
		DataType: &fitness.DataType{Name: "dt"},
		Device:   &fitness.Device{Manufacturer: "m", Model: "mo", Uid: "u"},
	}
	if got := fit.DataSourceID(ds, "p"); got != "derived:dt:p:m:mo:u" {
		t.Fatalf("got %q", got)
	}
}

func TestWeightDataSource(t *testing.T) {
	ds := fit.WeightDataSource()
	if ds.Type != "raw" || ds.Application.Name != "weight_import" {
		t.Fatalf("unexpected descriptor: %+v", ds)
	}
	if ds.DataType.Name != fit.WeightDataType {
		t.Fatalf("data type = %q", ds.DataType.Name)
	}
	if len(ds.DataType.Field) != 1 || ds.DataType.Field[0].Format != "floatPoint" || ds.DataType.Field[0].Name != "weight" {
		t.Fatalf("unexpected fields: %+v", ds.DataType.Field)
	}
	if ds.Device.Type != "scale" || ds.Device.Version != "1.0" {
		t.Fatalf("unexpected device: %+v", ds.Device)
	}
}

func source(name, id string) *fitness.DataSource {
	return &fitness.DataSource{DataType: &fitness.DataType{Name: name}, DataStreamId: id}
}

func TestFindWeightSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []*fitness.DataSource
		want    string
		found   bool
	}{
		{"empty", nil, "", false},
		{"no match", []*fitness.DataSource{source("com.google.step_count.delta", "a")}, "", false},
		{"only match", []*fitness.DataSource{source(fit.WeightDataType, "X")}, "X", true},
		{"match among others", []*fitness.DataSource{
			source("com.google.heart_rate.bpm", "a"),
			source("com.google.height", "b"),
			source(fit.WeightDataType, "X"),
			source("com.google.step_count.delta", "c"),
		}, "X", true},
		{"first match wins", []*fitness.DataSource{
			source(fit.WeightDataType, "first"),
			source(fit.WeightDataType, "second"),
		}, "first", true},
		{"nil entries skipped", []*fitness.DataSource{nil, {DataStreamId: "no-type"}, source(fit.WeightDataType, "X")}, "X", true},
		{"first match without id", []*fitness.DataSource{source(fit.WeightDataType, ""), source(fit.WeightDataType, "later")}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := fit.FindWeightSource(tc.sources)
			if got != tc.want || ok != tc.found {
				t.Fatalf("got (%q, %v), want (%q, %v)", got, ok, tc.want, tc.found)
			}
		})
	}
}

func TestDatasetID(t *testing.T) {
	if got := fit.DatasetID(100, 300); got != "100-300" {
		t.Fatalf("got %q", got)
	}
	if fit.AllTimeDatasetID != "0-9999999999000000000" {
		t.Fatalf("all-time id = %q", fit.AllTimeDatasetID)
	}
}
