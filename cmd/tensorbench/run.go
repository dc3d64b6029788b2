package main

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"tensorbench/internal/benchmark"
	"tensorbench/internal/telemetry"
	"tensorbench/internal/tensor"

	"github.com/spf13/cobra"
)

// newSuiteFunc allows tests to replace the fixed suite with a fast one.
var newSuiteFunc = benchmark.Suite

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the tensor micro-benchmark suite",
		Long: `Runs matrix multiplication, ReLU, linear layer and element-wise add
benchmarks at fixed sizes and prints a statistics block for every case.
The output is the format read by 'tensorbench compare'.`,
		Args: cobra.NoArgs,
		RunE: runSuite,
	}

	cmd.Flags().String("tag", "Go", "Source tag appended to every label")
	cmd.Flags().Float64("scale", 1.0, "Multiplier for iteration and warmup counts")
	cmd.Flags().String("filter", "", "Only run cases whose label matches this regular expression")
	cmd.Flags().Uint64("seed", 42, "Seed for the random operands")
	cmd.Flags().Bool("save", false, "Save results to the history store")
	cmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")

	return cmd
}

func runSuite(cmd *cobra.Command, args []string) error {
	tag := stringSetting(cmd.Flags(), "tag", "run.tag")
	scale := floatSetting(cmd.Flags(), "scale", "run.scale")
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", scale)
	}

	var filter *regexp.Regexp
	if pattern, _ := cmd.Flags().GetString("filter"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		filter = re
	}

	out := cmd.OutOrStdout()
	printBanner(out, tag)

	h := &benchmark.Harness{
		Out:    out,
		Tag:    tag,
		Scale:  scale,
		Filter: filter,
		Logger: slog.Default(),
	}

	start := time.Now()
	records, err := h.Run(cmd.Context(), newSuiteFunc(uint64Setting(cmd.Flags(), "seed", "run.seed")))
	if err != nil {
		return fmt.Errorf("benchmark run failed: %w", err)
	}
	telemetry.LogInfo("Benchmark suite finished", "records", len(records), "elapsed", time.Since(start))

	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintln(out, "Benchmark Complete!")
	fmt.Fprintln(out, "========================================")

	// stdout carries the statistics blocks, so bookkeeping goes to stderr.
	if save, _ := cmd.Flags().GetBool("save"); save {
		run := benchmark.Run{Timestamp: start, Source: tag, Records: records}
		if err := saveRuns(cmd.ErrOrStderr(), run); err != nil {
			return err
		}
	}

	if path := stringSetting(cmd.Flags(), "metrics-file", "metrics.file"); path != "" {
		if err := writeMetrics(cmd.ErrOrStderr(), path, records, nil); err != nil {
			return err
		}
	}

	return nil
}

func printBanner(w io.Writer, tag string) {
	title := "Benchmark Suite"
	if tag != "" {
		title = tag + " " + title
	}
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "========================================")

	if features := tensor.CPUFeatures(); len(features) > 0 {
		fmt.Fprintf(w, "Using CPU (%s)\n", strings.Join(features, ", "))
	} else {
		fmt.Fprintln(w, "Using CPU")
	}
}
