package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxatlas/internal/dataset"
	"taxatlas/internal/logging"
)

var (
	buildCsvPath      string
	buildMappingsPath string
	buildTuningPath   string
	buildVerbose      bool
)

var buildCmd = &cobra.Command{
	Use:   "build [csv-file]",
	Short: "Build the jurisdiction dataset from a raw rates CSV",
	Long: `Build reads a raw statutory-rates CSV, enriches each usable row into a
full jurisdiction profile, and saves the result as the region-partitioned
dataset plus the combined snapshot file.

Rows missing a country, a continent code, or a parsable tax rate are dropped
with a warning. The build fails only when no rows survive.

Examples:
  taxatlas build
  taxatlas build data/source/rates.csv
  taxatlas build --mappings mappings.toml --tuning tuning.toml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildMappingsPath, "mappings", "", "Country/region mapping overrides (TOML)")
	buildCmd.Flags().StringVar(&buildTuningPath, "tuning", "", "Regional heuristic tuning overrides (TOML)")
	buildCmd.Flags().BoolVar(&buildVerbose, "verbose", false, "Log each dropped row")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if buildVerbose {
		cfg.Logging.Level = string(logging.DebugLevel)
	}
	logger := newLogger(cfg)

	csvPath := resolvePath(cfg.Dataset.SourceCsv)
	if len(args) == 1 {
		csvPath = args[0]
	}

	mappingsPath := buildMappingsPath
	if mappingsPath == "" {
		mappingsPath = resolvePath(cfg.Dataset.MappingsPath)
	}
	tuningPath := buildTuningPath
	if tuningPath == "" {
		tuningPath = resolvePath(cfg.Dataset.TuningPath)
	}

	mappings, err := dataset.LoadMappings(mappingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mappings: %v\n", err)
		os.Exit(1)
	}
	tuning, err := dataset.LoadTuning(tuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, dropped, err := dataset.ReadCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading CSV: %v\n", err)
		os.Exit(1)
	}

	builder := dataset.NewBuilder(mappings, tuning, logger)
	records, err := builder.Build(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building dataset: %v\n", err)
		os.Exit(1)
	}

	st := newStore(cfg, logger)
	if err := st.Save(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Built %d jurisdictions from %s (%d rows dropped)\n", len(records), csvPath, dropped)
	fmt.Printf("Dataset written to %s\n", st.Dir())
}
