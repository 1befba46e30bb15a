package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzentrap/mzentrap/internal/efdr"
	"github.com/mzentrap/mzentrap/internal/library"
	"github.com/mzentrap/mzentrap/internal/mzidentml"
	"github.com/mzentrap/mzentrap/internal/report"
	"github.com/mzentrap/mzentrap/internal/sqlite"
)

var (
	reportFile    string
	mzidFile      string
	libraryFile   string
	outFile       string
	sqliteFile    string
	proteinOut    string
	proteinRollup bool
	ratio         float64
	workers       int
	scoreCV       string
	scoreLower    bool
	fileID        string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate empirical FDR from an identification report",
	Long: `Estimate empirical FDR for every identification in a report.

The entrapment library links each original peptide to its entrapment
counterpart. Identifications come from a tabular report (TSV or CSV, column
names configurable) or from an mzIdentML file.

Examples:
  # DIA report with a one-to-one entrapment library
  mzentrap estimate --report report.tsv --library pairs.tsv --out report-efdr.tsv

  # A library with two entrapment peptides per original
  mzentrap estimate --report report.tsv --library pairs.tsv --ratio 2 --out report-efdr.tsv

  # Comet results in mzIdentML, plus protein-level estimates
  mzentrap estimate --mzid run1.mzid --library pairs.tsv --out run1-efdr.tsv \
    --protein-rollup --protein-out run1-proteins.tsv`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&reportFile, "report", "i", "", "Identification report (TSV or CSV)")
	estimateCmd.Flags().StringVar(&mzidFile, "mzid", "", "Identification input in mzIdentML format (alternative to --report)")
	estimateCmd.Flags().StringVarP(&libraryFile, "library", "l", "", "Entrapment pair library (TSV or CSV, required)")
	estimateCmd.Flags().StringVarP(&outFile, "out", "o", "", "Annotated report output ('-' or empty writes to stdout)")
	estimateCmd.Flags().StringVar(&sqliteFile, "sqlite", "", "Also write results to this SQLite database")
	estimateCmd.Flags().BoolVar(&proteinRollup, "protein-rollup", false, "Also estimate FDR at protein level (best entry per protein)")
	estimateCmd.Flags().StringVar(&proteinOut, "protein-out", "", "Protein-level output path (default: derived from --out)")
	estimateCmd.Flags().Float64VarP(&ratio, "ratio", "r", 1.0, "Library-to-real entrapment ratio")
	estimateCmd.Flags().IntVar(&workers, "workers", 0, "Process acquisition files with this many workers (0 = serial)")
	estimateCmd.Flags().StringVar(&scoreCV, "score", "MS:1002257", "mzIdentML score cvParam accession or name")
	estimateCmd.Flags().BoolVar(&scoreLower, "score-lower-is-better", true, "Negate mzIdentML scores where lower means better (expectation values)")
	estimateCmd.Flags().StringVar(&fileID, "file-id", "", "File id stamped on mzIdentML entries (default: input basename)")

	estimateCmd.MarkFlagRequired("library")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if (reportFile == "") == (mzidFile == "") {
		return fmt.Errorf("exactly one of --report and --mzid must be given")
	}
	if cmd.Flags().Changed("ratio") {
		cfg.Ratio = ratio
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	records, err := library.ReadFile(libraryFile, library.Columns(cfg.Library))
	if err != nil {
		return err
	}
	index := efdr.BuildLibraryIndex(records)
	logger.Info("library loaded", "records", len(records), "peptides", index.Len())

	entries, err := loadEntries()
	if err != nil {
		return err
	}
	logger.Info("identifications loaded", "entries", len(entries))

	est := efdr.Estimator{
		Library: index,
		Ratio:   cfg.Ratio,
		Workers: cfg.Workers,
		Logger:  logger,
	}
	if err := est.Process(entries); err != nil {
		return err
	}

	if err := writeAnnotated(outFile, entries); err != nil {
		return err
	}

	if proteinRollup {
		path := proteinOut
		if path == "" {
			if outFile == "" || outFile == "-" {
				return fmt.Errorf("--protein-rollup with stdout output requires --protein-out")
			}
			ext := filepath.Ext(outFile)
			path = strings.TrimSuffix(outFile, ext) + "-proteins" + ext
		}
		rolled := efdr.RollupProteins(entries)
		if err := est.Process(rolled); err != nil {
			return err
		}
		if err := report.WriteFile(path, rolled); err != nil {
			return err
		}
		logger.Info("protein rollup written", "proteins", len(rolled), "path", path)
	}

	if sqliteFile != "" {
		w, err := sqlite.NewWriter(sqliteFile)
		if err != nil {
			return err
		}
		defer w.Close()
		info := sqlite.RunInfo{
			Ratio:       cfg.Ratio,
			ReportPath:  inputPath(),
			LibraryPath: libraryFile,
			Tool:        progName + " " + progVersion,
		}
		if err := w.WriteRun(info, entries); err != nil {
			return err
		}
		logger.Info("results stored", "database", sqliteFile)
	}

	logger.Info("estimation finished", "entries", len(entries))
	return nil
}

func loadEntries() ([]efdr.Entry, error) {
	if reportFile != "" {
		return report.ReadFile(reportFile, report.Columns(cfg.Report))
	}
	f, err := os.Open(mzidFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := mzidentml.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mzidFile, err)
	}
	id := fileID
	if id == "" {
		base := filepath.Base(mzidFile)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return m.Entries(mzidentml.ScoreSpec{Accession: scoreCV, LowerIsBetter: scoreLower}, id)
}

func inputPath() string {
	if reportFile != "" {
		return reportFile
	}
	return mzidFile
}

func writeAnnotated(path string, entries []efdr.Entry) error {
	if path == "" || path == "-" {
		return report.Write(os.Stdout, entries)
	}
	return report.WriteFile(path, entries)
}
