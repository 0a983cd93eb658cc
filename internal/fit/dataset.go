package fit

import "fmt"

// AllTimeDatasetID spans the epoch to a far-future instant, covering all real data.
const AllTimeDatasetID = "0-9999999999000000000"

// DatasetID formats a dataset identifier from nanosecond bounds.
func DatasetID(minNanos, maxNanos int64) string {
	return fmt.Sprintf("%d-%d", minNanos, maxNanos)
}
