package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"tensorbench/internal/benchmark"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored benchmark runs",
		Long: `Lists the runs saved with --save. Use 'history show <index>' to print a
stored run as statistics blocks, or 'history show latest' for the newest.`,
		Args: cobra.NoArgs,
		RunE: listHistory,
	}
	cmd.PersistentFlags().String("source", "", "Only consider runs from this source")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to list (0 for all)")

	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <index|latest>",
		Short: "Print a stored run in statistics block format",
		Args:  cobra.ExactArgs(1),
		RunE:  showHistory,
	}
}

func listHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	type entry struct {
		index int
		run   benchmark.Run
	}
	var entries []entry
	for i, run := range runs {
		if source == "" || run.Source == source {
			entries = append(entries, entry{index: i, run: run})
		}
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No benchmark history found.")
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INDEX\tTIMESTAMP\tCOMMIT\tSOURCE\tRECORDS")
	for _, e := range entries {
		commit := e.run.Commit
		if commit == "" {
			commit = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			e.index, e.run.Timestamp.Format("2006-01-02 15:04:05"), commit, e.run.Source, len(e.run.Records))
	}
	return w.Flush()
}

func showHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var run *benchmark.Run
	if args[0] == "latest" {
		source, _ := cmd.Flags().GetString("source")
		run, err = store.LoadLatest(source)
		if err != nil {
			return fmt.Errorf("failed to load latest run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("no stored runs")
		}
	} else {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid run index %q", args[0])
		}
		runs, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if index < 0 || index >= len(runs) {
			return fmt.Errorf("run index %d out of range (%d stored)", index, len(runs))
		}
		run = &runs[index]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== %s run at %s", run.Source, run.Timestamp.Format("2006-01-02 15:04:05"))
	if run.Commit != "" {
		fmt.Fprintf(out, " (%s)", run.Commit)
	}
	fmt.Fprintln(out, " ===")

	for _, r := range run.Records {
		if err := benchmark.WriteRecord(out, r); err != nil {
			return err
		}
	}
	return nil
}
