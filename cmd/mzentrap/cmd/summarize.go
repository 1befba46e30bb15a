package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzentrap/mzentrap/internal/report"
)

var thresholds string

var summarizeCmd = &cobra.Command{
	Use:   "summarize <annotated-report>",
	Short: "Summarize an annotated report",
	Long: `Summarize an annotated report produced by "mzentrap estimate".

Prints per-estimator score statistics and the number of identifications
accepted at each FDR threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&thresholds, "thresholds", "t", "0.01,0.05",
		"Comma-separated FDR thresholds to report acceptance counts for")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ts, err := parseThresholds(thresholds)
	if err != nil {
		return err
	}
	entries, err := report.ReadAnnotatedFile(args[0])
	if err != nil {
		return err
	}
	logger.Info("annotated report loaded", "entries", len(entries), "path", args[0])
	sum := report.Summarize(entries, ts)
	sum.Print(os.Stdout)
	return nil
}

func parseThresholds(s string) ([]float64, error) {
	var ts []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("threshold %q: %w", part, err)
		}
		if t < 0 || t > 1 {
			return nil, fmt.Errorf("threshold %v outside [0, 1]", t)
		}
		ts = append(ts, t)
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("no thresholds given")
	}
	return ts, nil
}
