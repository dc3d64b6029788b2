package benchmark

import "time"

// Record is one parsed statistics block.
type Record struct {
	Operation  string  `json:"operation"`
	Source     string  `json:"source"`
	Iterations int     `json:"iterations"`
	MeanUs     float64 `json:"mean_us"`
	MedianUs   float64 `json:"median_us"`
	StdDevUs   float64 `json:"stddev_us"`
	MinUs      float64 `json:"min_us,omitempty"`
	MaxUs      float64 `json:"max_us,omitempty"`
}

// Label returns the operation label as printed by the producer.
func (r Record) Label() string {
	if r.Source == "" {
		return r.Operation
	}
	return r.Operation + labelSep + r.Source
}

// Run represents a collection of records from a single execution.
type Run struct {
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit,omitempty"` // Git commit hash
	Source    string    `json:"source"`
	Records   []Record  `json:"records"`
}
