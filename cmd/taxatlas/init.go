package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taxatlas/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a taxatlas project in the current directory",
	Long: `Init writes a default .taxatlas/config.json and creates the dataset
directories. Existing configuration is left untouched unless --force is
given.

Examples:
  taxatlas init
  taxatlas init --root /srv/taxdata`,
	Run: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	configPath := filepath.Join(rootFlag, config.ConfigDir, "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", configPath)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(rootFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}

	for _, dir := range []string{
		resolvePath(cfg.Dataset.Dir),
		filepath.Dir(resolvePath(cfg.Dataset.SourceCsv)),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Initialized taxatlas project in %s\n", rootFlag)
	fmt.Printf("  Config:  %s\n", configPath)
	fmt.Printf("  Dataset: %s\n", resolvePath(cfg.Dataset.Dir))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Drop a rates CSV at " + cfg.Dataset.SourceCsv)
	fmt.Println("  2. Run 'taxatlas build'")
	fmt.Println("  3. Run 'taxatlas token --save' to enable dataset edits")
}
