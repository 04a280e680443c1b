package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slotsense/domain/evidence"
	"slotsense/domain/setting"
	"slotsense/domain/stats"
	"slotsense/internal/errors"
	"slotsense/internal/rates"
	"slotsense/internal/report"
	"slotsense/internal/session"
	"slotsense/internal/testkit"
	"slotsense/internal/validation"
)

// Output formats
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

func newAnalyzeCmd(app *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [counters.json|-]",
		Short: "Analyze one session's counters",
		Long: `Read one session's counters as JSON and print the analysis.

Blank voice and bell totals are derived from their parts before validation.

Example: slotsense analyze session.json --format markdown`,
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
			return writeResult(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json|markdown|html")
	return cmd
}

func newScenariosCmd(app *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scenarios [name]",
		Short: "List the preset sessions, or analyze one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, s := range testkit.Scenarios() {
					fmt.Fprintf(out, "%-16s %s (expect %s)\n", s.Name, s.Description, s.Expected)
				}
				return nil
			}

			scenario, err := testkit.ScenarioByName(args[0])
			if err != nil {
				return errors.NotFound("scenario", err)
			}
			result, err := app.analyze(scenario.Counters)
			if err != nil {
				return err
			}
			return writeResult(out, result, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatMarkdown, "Output format: json|markdown|html")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [difference]",
		Short: "Classify a cumulative medal difference as cold, normal or hot",
		Long: `Classify a cumulative medal difference. Negative values follow "--".

Example: slotsense classify -- -2000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			difference, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return errors.InvalidInput(fmt.Sprintf("difference must be an integer: %q", args[0]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Classify(difference))
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		trueSetting string
		seed        int64
		count       int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Simulate sessions for a known setting",
		Long: `Draw synthetic session counters from the rate table for a known setting.
The same seed always yields the same sessions.

Example: slotsense generate --setting 6 --seed 7 --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setting.Parse(trueSetting)
			if err != nil {
				return errors.InvalidInput(err.Error())
			}
			if count < 1 {
				return errors.InvalidInput("count must be at least 1")
			}

			cfg := testkit.DefaultSessionConfig(s)
			cfg.Seed = seed
			sessions := testkit.NewSessionGenerator(cfg, rates.Default()).GenerateMany(count)

			if count == 1 {
				return writeJSON(cmd.OutOrStdout(), sessions[0])
			}
			return writeJSON(cmd.OutOrStdout(), sessions)
		},
	}

	cmd.Flags().StringVar(&trueSetting, "setting", "6", "True setting to simulate (1, 2, 4, 5 or 6)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	cmd.Flags().IntVar(&count, "count", 1, "Number of sessions")
	return cmd
}

// analyze normalizes and validates counters before running the engine
func (a *cli) analyze(c evidence.Counters) (stats.AnalysisResult, error) {
	c = validation.Normalize(c)
	if err := validation.Validate(c); err != nil {
		return stats.AnalysisResult{}, err
	}
	return a.engine.Analyze(c), nil
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func readCounters(stdin io.Reader, path string) (evidence.Counters, error) {
	var counters evidence.Counters

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return counters, errors.NotFound("counters file", err)
			}
			return counters, errors.Wrapf(err, "failed to open %s", path)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&counters); err != nil {
		return counters, errors.ValidationError("malformed counters", err)
	}
	return counters, nil
}

func writeResult(w io.Writer, result stats.AnalysisResult, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, result)
	case formatMarkdown:
		_, err := io.WriteString(w, report.Result(result))
		return err
	case formatHTML:
		_, err := w.Write(report.HTML(report.Result(result)))
		return err
	}
	return errors.InvalidInput(fmt.Sprintf("unknown format %q", format))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
