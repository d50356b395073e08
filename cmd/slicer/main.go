// Package main provides the slicer command-line tool for fetching and
// projecting genomic regions.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "slicer",
		Short:   "Fetch, split and project genomic regions",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Long: `slicer works with regions of a genome assembly, including regions
that wrap across the origin of a circular replicon, and projects them
between assembly coordinate systems.`,
		Example: `  # Fetch the sequence of a wrapping region on a plasmid
  slicer fetch --fasta plasmid.fa "pPCP1:9500-100"

  # Project a contig region onto the chromosome coordinate system
  slicer project --db assembly.duckdb --to chromosome "ctg1:1-5000"`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newFetchCmd())
	root.AddCommand(newProjectCmd())
	root.AddCommand(newSplitCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil // no home directory, no config file
	}
	viper.SetConfigFile(home + "/.slicer.yaml")
	viper.SetEnvPrefix("SLICER")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil // config file is optional
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger: errors only, or full development
// output with --verbose.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
