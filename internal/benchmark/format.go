package benchmark

import (
	"fmt"
	"io"
)

// Unit is the suffix every timing field carries in a statistics block.
const Unit = "μs"

// WriteStatistics prints one statistics block. The layout is parsed back by
// ParseOutput, so field names, the unit and the precision are fixed.
func WriteStatistics(w io.Writer, label string, iterations int, s Summary) error {
	_, err := fmt.Fprintf(w, "\n%s Statistics:\n"+
		"  Iterations: %d\n"+
		"  Mean:   %.3f %s\n"+
		"  Median: %.3f %s\n"+
		"  StdDev: %.3f %s\n"+
		"  Min:    %.3f %s\n"+
		"  Max:    %.3f %s\n",
		label, iterations,
		s.Mean, Unit,
		s.Median, Unit,
		s.StdDev, Unit,
		s.Min, Unit,
		s.Max, Unit,
	)
	return err
}

// WriteRecord prints a record back in statistics block form.
func WriteRecord(w io.Writer, r Record) error {
	return WriteStatistics(w, r.Label(), r.Iterations, Summary{
		Count:  r.Iterations,
		Mean:   r.MeanUs,
		Median: r.MedianUs,
		StdDev: r.StdDevUs,
		Min:    r.MinUs,
		Max:    r.MaxUs,
	})
}
