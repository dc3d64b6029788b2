package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tensorbench/internal/benchmark"
	"tensorbench/internal/notify"
	"tensorbench/internal/telemetry"
	"tensorbench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resultNotifier publishes a comparison summary with optional details.
type resultNotifier interface {
	Notify(ctx context.Context, summary, details string) (string, error)
}

var (
	newRunnerFunc   = func() benchmark.Runner { return benchmark.NewProcessRunner() }
	newNotifierFunc = func() (resultNotifier, error) {
		n, err := notify.NewFromConfig()
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	executableFunc = os.Executable
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the native and runner benchmarks and compare them",
		Long: `Runs the native benchmark executable, then the benchmark runner (this
binary's 'run' command unless configured otherwise), parses the statistics
blocks both print and reports per-operation timings and speedups.

The native run is the reference: a speedup above 1 means native was faster.`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}

	cmd.Flags().String("native", "", "Path to the native benchmark executable")
	cmd.Flags().String("runner", "", "Path to the benchmark runner executable")
	cmd.Flags().String("native-log", "", "Read native output from this file instead of running it")
	cmd.Flags().String("runner-log", "", "Read runner output from this file instead of running it")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, markdown or json")
	cmd.Flags().Duration("timeout", 0, "Deadline for each benchmark process (0 for none)")
	cmd.Flags().Bool("save", false, "Save both runs to the history store")
	cmd.Flags().Bool("notify", false, "Post the speedup summary to Slack")
	cmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")

	return cmd
}

func targetFromConfig(key string) benchmark.Target {
	return benchmark.Target{
		Name: viper.GetString(key + ".name"),
		Path: viper.GetString(key + ".path"),
		Args: viper.GetStringSlice(key + ".args"),
		Dir:  viper.GetString(key + ".dir"),
	}
}

// selfArgs returns the global flags a child run of this executable needs to
// see the same configuration.
func selfArgs() []string {
	var args []string
	if cfgFile != "" {
		path := cfgFile
		if abs, err := filepath.Abs(cfgFile); err == nil {
			path = abs
		}
		args = append(args, "--config", path)
	}
	if viper.GetBool("verbose") {
		args = append(args, "--verbose")
	}
	return args
}

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	format := strings.ToLower(stringSetting(cmd.Flags(), "format", "compare.format"))
	switch format {
	case "table", "markdown", "json":
	default:
		return fmt.Errorf("unknown format %q: must be table, markdown or json", format)
	}

	// Keep JSON output machine readable.
	progress := out
	if format == "json" {
		progress = cmd.ErrOrStderr()
	}

	native := targetFromConfig("compare.native")
	native.Path = stringSetting(cmd.Flags(), "native", "compare.native.path")

	runner := targetFromConfig("compare.runner")
	runner.Path = stringSetting(cmd.Flags(), "runner", "compare.runner.path")
	if runner.Path == "" {
		exe, err := executableFunc()
		if err != nil {
			return fmt.Errorf("failed to locate runner executable: %w", err)
		}
		runner.Path = exe
		runner.Args = append(append([]string{}, runner.Args...), selfArgs()...)
	}

	ctx := cmd.Context()
	timeout := durationSetting(cmd.Flags(), "timeout", "compare.timeout")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r := newRunnerFunc()
	nativeLog, _ := cmd.Flags().GetString("native-log")
	nativeOut, err := collect(ctx, progress, r, native, nativeLog)
	if err != nil {
		return abort(ctx, out, err, timeout)
	}

	fmt.Fprintln(progress)
	runnerLog, _ := cmd.Flags().GetString("runner-log")
	runnerOut, err := collect(ctx, progress, r, runner, runnerLog)
	if err != nil {
		return abort(ctx, out, err, timeout)
	}

	report := &benchmark.Report{
		ReferenceName: native.Name,
		OtherName:     runner.Name,
		Reference:     benchmark.ParseOutput(nativeOut, native.Name),
		Other:         benchmark.ParseOutput(runnerOut, runner.Name),
	}
	telemetry.LogDebug("Parsed benchmark output",
		"reference", native.Name, "reference_records", len(report.Reference),
		"other", runner.Name, "other_records", len(report.Other))

	if err := writeReport(out, report, format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		now := time.Now()
		err := saveRuns(progress,
			benchmark.Run{Timestamp: now, Source: native.Name, Records: report.Reference},
			benchmark.Run{Timestamp: now, Source: runner.Name, Records: report.Other},
		)
		if err != nil {
			return err
		}
	}

	if path := stringSetting(cmd.Flags(), "metrics-file", "metrics.file"); path != "" {
		records := append(append([]benchmark.Record{}, report.Reference...), report.Other...)
		if err := writeMetrics(progress, path, records, report); err != nil {
			return err
		}
	}

	if n, _ := cmd.Flags().GetBool("notify"); n {
		sendNotification(cmd.Context(), cmd.ErrOrStderr(), report)
	}

	return nil
}

// collect returns the output of target, either from a previously captured
// log file or by running it.
func collect(ctx context.Context, w io.Writer, r benchmark.Runner, target benchmark.Target, logPath string) (string, error) {
	if logPath != "" {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s output: %w", target.Name, err)
		}
		fmt.Fprintf(w, "Using %s output from %s\n", target.Name, logPath)
		return string(data), nil
	}

	fmt.Fprintf(w, "Running %s benchmark...\n", target.Name)
	telemetry.LogDebug("Starting benchmark process", "name", target.Name, "command", target.String(), "dir", target.Dir)

	output, err := r.Run(ctx, target)
	if err != nil {
		return output, err
	}
	fmt.Fprintf(w, "%s benchmark completed.\n", target.Name)
	return output, nil
}

// abort prints the failure and whatever the process wrote before it.
func abort(ctx context.Context, w io.Writer, err error, timeout time.Duration) error {
	fmt.Fprintf(w, "Error: %v\n", err)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		fmt.Fprintf(w, "The benchmark did not finish within %s.\n", timeout)
	}

	var perr *benchmark.ProcessError
	if errors.As(err, &perr) {
		if errors.Is(err, benchmark.ErrNotFound) {
			fmt.Fprintln(w, "Please build it first or set its path in the configuration.")
		} else if perr.Output != "" {
			fmt.Fprint(w, perr.Output)
		}
	}

	return &reportedError{err: err}
}

func writeReport(w io.Writer, report *benchmark.Report, format string) error {
	switch format {
	case "json":
		return report.WriteJSON(w)
	case "markdown":
		_, err := fmt.Fprint(w, ui.RenderMarkdown(report.Markdown(), 100))
		return err
	default:
		report.Style = ui.NewStyler(w)
		return report.WriteTable(w)
	}
}

// sendNotification posts the summary and threads the plain table under it.
// Failures are reported but do not fail the comparison.
func sendNotification(ctx context.Context, w io.Writer, report *benchmark.Report) {
	n, err := newNotifierFunc()
	if err != nil {
		fmt.Fprintf(w, "Warning: notification skipped: %v\n", err)
		return
	}

	var table bytes.Buffer
	plain := *report
	plain.Style = nil
	if err := plain.WriteTable(&table); err != nil {
		fmt.Fprintf(w, "Warning: failed to render notification: %v\n", err)
		return
	}

	if _, err := n.Notify(ctx, notify.Summary(report), "```\n"+table.String()+"```"); err != nil {
		telemetry.LogError("Failed to send notification", err, "channel", viper.GetString("notifications.slack.channel"))
		fmt.Fprintf(w, "Warning: failed to send notification: %v\n", err)
	}
}
