package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"time"
)

// Case is a single timed operation.
type Case struct {
	Label      string
	Iterations int
	Warmup     int
	Op         func()
}

// Section groups cases under a printed heading.
type Section struct {
	Title string
	Cases []Case
}

// Measure runs the warmup iterations, then times each of the remaining
// iterations individually and returns their durations in microseconds.
func Measure(c Case) []float64 {
	for i := 0; i < c.Warmup; i++ {
		c.Op()
	}

	times := make([]float64, 0, c.Iterations)
	for i := 0; i < c.Iterations; i++ {
		start := time.Now()
		c.Op()
		times = append(times, float64(time.Since(start).Nanoseconds())/1e3)
	}
	return times
}

// Harness executes sections and writes statistics blocks to Out.
type Harness struct {
	Out    io.Writer
	Tag    string         // appended to every label as " - <Tag>"
	Scale  float64        // multiplier for iteration and warmup counts
	Filter *regexp.Regexp // optional label filter
	Logger *slog.Logger

	// OnResult, when set, receives every record as it is produced.
	OnResult func(Record)
}

func (h *Harness) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *Harness) label(c Case) string {
	if h.Tag == "" {
		return c.Label
	}
	return c.Label + labelSep + h.Tag
}

func (h *Harness) scaled(c Case) Case {
	if h.Scale <= 0 || h.Scale == 1 {
		return c
	}
	c.Iterations = max(1, int(math.Round(float64(c.Iterations)*h.Scale)))
	c.Warmup = max(0, int(math.Round(float64(c.Warmup)*h.Scale)))
	return c
}

// Run measures every case in order and returns the resulting records.
// Cancellation is only observed between cases.
func (h *Harness) Run(ctx context.Context, sections []Section) ([]Record, error) {
	var records []Record
	for _, sec := range sections {
		var cases []Case
		for _, c := range sec.Cases {
			if h.Filter == nil || h.Filter.MatchString(c.Label) {
				cases = append(cases, c)
			}
		}
		if len(cases) == 0 {
			continue
		}

		title := sec.Title
		if h.Tag != "" {
			title = fmt.Sprintf("%s (%s)", sec.Title, h.Tag)
		}
		if _, err := fmt.Fprintf(h.Out, "\n=== %s ===\n", title); err != nil {
			return records, err
		}

		for _, c := range cases {
			if err := ctx.Err(); err != nil {
				return records, err
			}
			c = h.scaled(c)

			h.logger().Debug("Running benchmark case", "label", c.Label, "iterations", c.Iterations, "warmup", c.Warmup)
			s := Summarize(Measure(c))

			if err := WriteStatistics(h.Out, h.label(c), c.Iterations, s); err != nil {
				return records, err
			}

			rec := Record{
				Operation:  c.Label,
				Source:     h.Tag,
				Iterations: c.Iterations,
				MeanUs:     s.Mean,
				MedianUs:   s.Median,
				StdDevUs:   s.StdDev,
				MinUs:      s.Min,
				MaxUs:      s.Max,
			}
			records = append(records, rec)
			if h.OnResult != nil {
				h.OnResult(rec)
			}
		}
	}
	return records, nil
}
