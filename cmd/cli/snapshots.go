package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"slotsense/adapters/excel"
	"slotsense/adapters/filestore"
	"slotsense/domain/snapshot"
	"slotsense/internal/errors"
	"slotsense/internal/report"
	"slotsense/internal/validation"
)

func newExportCmd(app *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export [counters.json|-]",
		Short: "Analyze a session and save it as a snapshot file",
		Long: `Analyze one session and write counters and result together as a
snapshot file named slotsense-analysis-<date>-<id>.json.

Example: slotsense export session.json --dir ./snapshots`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			counters, err := readCounters(cmd.InOrStdin(), argOrStdin(args))
			if err != nil {
				return err
			}
			result, err := app.analyze(counters)
			if err != nil {
				return err
			}

			store, err := app.store(dir)
			if err != nil {
				return err
			}
			snap := snapshot.New(validation.Normalize(counters), result)
			path, err := store.WriteFile(snap)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default SNAPSHOT_DIR)")
	return cmd
}

func newImportCmd(app *cli) *cobra.Command {
	var (
		save       bool
		allowDrift bool
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "import [snapshot.json]",
		Short: "Re-validate and re-analyze an exported snapshot",
		Long: `Read an exported snapshot, re-validate its counters and re-run the analysis.
The command fails when the stored result no longer matches, unless --allow-drift is set.

Example: slotsense import snapshots/slotsense-analysis-2026-10-19-<id>.json --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.NotFound("snapshot file", err)
				}
				return errors.Wrapf(err, "failed to open %s", args[0])
			}
			defer f.Close()

			imported, err := filestore.Import(f, app.engine)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			snap := imported.Snapshot
			fmt.Fprintf(out, "Snapshot: %s (%s)\n", snap.ID, snap.CreatedAt)
			fmt.Fprintf(out, "Stored:     %s, setting %s\n",
				snap.Result.Conclusion.Recommendation, snap.Result.Conclusion.MostLikelySetting)
			fmt.Fprintf(out, "Recomputed: %s, setting %s\n",
				imported.Recomputed.Conclusion.Recommendation, imported.Recomputed.Conclusion.MostLikelySetting)
			fmt.Fprintf(out, "Matches: %t\n", imported.Matches)

			if err := imported.Verify(); err != nil {
				if !allowDrift {
					return err
				}
				app.logger.Warn(err.Error())
				snap.Result = imported.Recomputed
			}

			if save {
				store, err := app.store(dir)
				if err != nil {
					return err
				}
				if _, err := store.WriteFile(snap); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the snapshot in the snapshot directory")
	cmd.Flags().BoolVar(&allowDrift, "allow-drift", false, "Keep going when the recomputed result differs")
	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default SNAPSHOT_DIR)")
	return cmd
}

func newReportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report [snapshot.json]",
		Short: "Render a snapshot file as markdown or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := filestore.ReadFile(args[0])
			if err != nil {
				return err
			}

			md := report.Snapshot(snap)
			out := cmd.OutOrStdout()
			switch format {
			case formatMarkdown:
				_, err = io.WriteString(out, md)
			case formatHTML:
				_, err = out.Write(report.HTML(md))
			default:
				err = errors.InvalidInput(fmt.Sprintf("unknown format %q", format))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", formatMarkdown, "Output format: markdown|html")
	return cmd
}

func newHistoryCmd(app *cli) *cobra.Command {
	var (
		dir    string
		output string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Write the stored snapshots to an xlsx workbook",
		Long: `Collect the snapshots in the snapshot directory, newest first, into one
workbook with a Snapshots sheet and a Variance sheet.

Example: slotsense history --out history.xlsx --limit 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.store(dir)
			if err != nil {
				return err
			}
			snaps, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if err := excel.WriteFile(output, snaps); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d snapshots written to %s\n", len(snaps), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default SNAPSHOT_DIR)")
	cmd.Flags().StringVar(&output, "out", "slotsense-history.xlsx", "Workbook path")
	cmd.Flags().IntVar(&limit, "limit", 0, "Newest snapshots to include (0 for all)")
	return cmd
}

func newBatchCmd(app *cli) *cobra.Command {
	var (
		save   bool
		dir    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "batch [sessions.csv|sessions.xlsx]",
		Short: "Analyze every session in a CSV or xlsx sheet",
		Long: `Read one session per row, matching columns by header name (voice.sin,
bell.diagonal, ...), and analyze them concurrently.

Example: slotsense batch sessions.xlsx --save --out results.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := excel.ReadCounters(args[0])
			if err != nil {
				return err
			}
			for i := range sessions {
				sessions[i] = validation.Normalize(sessions[i])
				if err := validation.Validate(sessions[i]); err != nil {
					return errors.Wrapf(err, "row %d", i+2)
				}
			}

			results, err := app.engine.AnalyzeBatch(cmd.Context(), sessions)
			if err != nil {
				return err
			}

			snaps := make([]*snapshot.Snapshot, len(results))
			out := cmd.OutOrStdout()
			for i, r := range results {
				snaps[i] = snapshot.New(sessions[i], r)
				_, p := r.Posterior.Max()
				fmt.Fprintf(out, "%3d  setting %s  %5.1f%%  %-15s %s\n",
					i+1, r.Conclusion.MostLikelySetting, p, r.Conclusion.Recommendation, r.Conclusion.StatisticalStrength)
			}

			if save {
				store, err := app.store(dir)
				if err != nil {
					return err
				}
				for _, snap := range snaps {
					if err := store.Save(cmd.Context(), snap); err != nil {
						return err
					}
				}
			}
			if output != "" {
				return excel.WriteFile(output, snaps)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store every result as a snapshot")
	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default SNAPSHOT_DIR)")
	cmd.Flags().StringVar(&output, "out", "", "Also write the results to this workbook")
	return cmd
}

func (a *cli) store(dir string) (*filestore.Store, error) {
	if dir == "" {
		dir = a.cfg.Storage.Dir
	}
	return filestore.New(dir)
}
