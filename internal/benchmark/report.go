package benchmark

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// Styler decorates report headings and speedup verdicts. The zero Report
// uses plain text.
type Styler interface {
	Title(text string) string
	Verdict(text string, faster bool) string
}

type plainStyler struct{}

func (plainStyler) Title(text string) string           { return text }
func (plainStyler) Verdict(text string, _ bool) string { return text }

// Report joins the records of a reference source with those of another
// source.
type Report struct {
	ReferenceName string
	OtherName     string
	Reference     []Record
	Other         []Record
	Style         Styler
}

func (r *Report) style() Styler {
	if r.Style == nil {
		return plainStyler{}
	}
	return r.Style
}

// Speedups returns the per-operation speedups of Other over Reference.
func (r *Report) Speedups() []Speedup {
	return Compare(r.Reference, r.Other)
}

// rows returns every record ordered by operation, reference records first.
func (r *Report) rows() []Record {
	refByOp := Group(r.Reference)
	otherByOp := Group(r.Other)

	var rows []Record
	for _, op := range Operations(r.Reference, r.Other) {
		rows = append(rows, refByOp[op]...)
		rows = append(rows, otherByOp[op]...)
	}
	return rows
}

func formatRatio(ratio float64) string {
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return fmt.Sprintf("%v", ratio)
	}
	return fmt.Sprintf("%.2fx", ratio)
}

func (r *Report) verdict(s Speedup) string {
	text := "slower"
	if s.Faster() {
		text = "faster"
	}
	return r.style().Verdict(formatRatio(s.Ratio)+" "+text, s.Faster())
}

// WriteTable prints the comparison table followed by the speedup analysis.
func (r *Report) WriteTable(w io.Writer) error {
	st := r.style()
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", rule, st.Title("BENCHMARK COMPARISON REPORT"), rule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var prev string
	fmt.Fprintln(tw, "OPERATION\tFRAMEWORK\tMEAN (μs)\tMEDIAN (μs)\tSTDDEV\tITER")
	for i, rec := range r.rows() {
		// A row of empty cells separates operations without breaking column alignment.
		if i > 0 && rec.Operation != prev {
			fmt.Fprintln(tw, "\t\t\t\t\t")
		}
		prev = rec.Operation
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%d\n",
			rec.Operation, rec.Source, rec.MeanUs, rec.MedianUs, rec.StdDevUs, rec.Iterations)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", rule, st.Title("SPEEDUP ANALYSIS"), rule)

	for _, s := range r.Speedups() {
		fmt.Fprintf(w, "%s:\n", s.Operation)
		fmt.Fprintf(w, "  %-13s %.3f %s\n", r.ReferenceName+":", s.Reference.MeanUs, Unit)
		fmt.Fprintf(w, "  %-13s %.3f %s\n", r.OtherName+":", s.Other.MeanUs, Unit)
		if _, err := fmt.Fprintf(w, "  %-13s %s\n\n", "Speedup:", r.verdict(s)); err != nil {
			return err
		}
	}
	return nil
}

// Markdown returns the report as a Markdown document.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Comparison Report\n\n")
	sb.WriteString("| Operation | Framework | Mean (μs) | Median (μs) | StdDev | Iterations |\n")
	sb.WriteString("|---|---|---:|---:|---:|---:|\n")
	for _, rec := range r.rows() {
		fmt.Fprintf(&sb, "| %s | %s | %.3f | %.3f | %.3f | %d |\n",
			rec.Operation, rec.Source, rec.MeanUs, rec.MedianUs, rec.StdDevUs, rec.Iterations)
	}

	sb.WriteString("\n## Speedup Analysis\n\n")
	speedups := r.Speedups()
	if len(speedups) == 0 {
		sb.WriteString("_No operation was measured by both sources._\n")
	}
	for _, s := range speedups {
		verdict := "slower"
		if s.Faster() {
			verdict = "faster"
		}
		fmt.Fprintf(&sb, "- **%s**: %s %.3f μs, %s %.3f μs, %s %s\n",
			s.Operation, r.ReferenceName, s.Reference.MeanUs, r.OtherName, s.Other.MeanUs, formatRatio(s.Ratio), verdict)
	}
	return sb.String()
}

type jsonSpeedup struct {
	Operation string   `json:"operation"`
	Reference float64  `json:"reference_mean_us"`
	Other     float64  `json:"other_mean_us"`
	Ratio     *float64 `json:"ratio"`
}

type jsonReport struct {
	ReferenceName string        `json:"reference"`
	OtherName     string        `json:"other"`
	Records       []Record      `json:"records"`
	Speedups      []jsonSpeedup `json:"speedups"`
}

// WriteJSON encodes the report. Non-finite ratios are emitted as null.
func (r *Report) WriteJSON(w io.Writer) error {
	out := jsonReport{
		ReferenceName: r.ReferenceName,
		OtherName:     r.OtherName,
		Records:       r.rows(),
		Speedups:      []jsonSpeedup{},
	}
	if out.Records == nil {
		out.Records = []Record{}
	}
	for _, s := range r.Speedups() {
		js := jsonSpeedup{Operation: s.Operation, Reference: s.Reference.MeanUs, Other: s.Other.MeanUs}
		if !math.IsInf(s.Ratio, 0) && !math.IsNaN(s.Ratio) {
			ratio := s.Ratio
			js.Ratio = &ratio
		}
		out.Speedups = append(out.Speedups, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
