package fit

import (
	"strings"

	"google.golang.org/api/fitness/v1"
)

// WeightDataType is the Fit data type name for body weight.
const WeightDataType = "com.google.weight"

// WeightDataSource returns the descriptor registered for imported scale data.
func WeightDataSource() *fitness.DataSource {
	return &fitness.DataSource{
		Type:        "raw",
		Application: &fitness.Application{Name: "weight_import"},
		DataType: &fitness.DataType{
			Name: WeightDataType,
			Field: []*fitness.DataTypeField{
				{Format: "floatPoint", Name: "weight"},
			},
		},
		Device: &fitness.Device{
			Type:         "scale",
			Manufacturer: "withings",
			Model:        "smart-body-analyzer",
			Uid:          "ws-50",
			Version:      "1.0",
		},
	}
}

// DataSourceID composes the stream id the API assigns to ds under projectID:
// type:dataType:project:manufacturer:model:uid.
func DataSourceID(ds *fitness.DataSource, projectID string) string {
	var dataType, manufacturer, model, uid string
	if ds.DataType != nil {
		dataType = ds.DataType.Name
	}
	if ds.Device != nil {
		manufacturer = ds.Device.Manufacturer
		model = ds.Device.Model
		uid = ds.Device.Uid
	}
	return strings.Join([]string{ds.Type, dataType, projectID, manufacturer, model, uid}, ":")
}

// FindWeightSource returns the stream id of the first weight source in list
// order. A first match without a stream id counts as not found.
func FindWeightSource(sources []*fitness.DataSource) (string, bool) {
	for _, s := range sources {
		if s == nil || s.DataType == nil {
			continue
		}
		if s.DataType.Name == WeightDataType {
			return s.DataStreamId, s.DataStreamId != ""
		}
	}
	return "", false
}
