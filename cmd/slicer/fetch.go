package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swingingsimian/ensembl/internal/coord"
	"github.com/swingingsimian/ensembl/internal/store"
)

func newFetchCmd() *cobra.Command {
	var (
		fastaPath string
		dbPath    string
		length    int64
		circular  bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <region>",
		Short: "Fetch the sequence of a region",
		Long: `Fetch the sequence covered by a region spec of the form
name:start-end or name:start-end:strand. A wrapping region (start > end
on a circular reference) is fetched as its two arcs and reassembled.
Without a FASTA file the sequence is reported as N placeholders.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(args[0], fastaPath, dbPath, length, circular)
		},
	}

	cmd.Flags().StringVar(&fastaPath, "fasta", "", "FASTA file to fetch sequence from")
	cmd.Flags().StringVar(&dbPath, "db", "", "Assembly database (DuckDB) for region metadata")
	cmd.Flags().Int64Var(&length, "length", 0, "Reference length when no database is given")
	cmd.Flags().BoolVar(&circular, "circular", false, "Treat the reference as circular when no database is given")
	viper.BindPFlag("fasta", cmd.Flags().Lookup("fasta"))
	viper.BindPFlag("db", cmd.Flags().Lookup("db"))

	return cmd
}

func runFetch(spec, fastaPath, dbPath string, length int64, circular bool) error {
	region, _, cleanup, err := buildRegion(spec, fastaPath, dbPath, length, circular)
	if err != nil {
		return err
	}
	defer cleanup()

	seq, err := region.FetchSequence()
	if err != nil {
		return err
	}
	fmt.Printf(">%s\n", region)
	for i := 0; i < len(seq); i += 60 {
		end := min(i+60, len(seq))
		fmt.Println(seq[i:end])
	}
	return nil
}

// buildRegion parses a region spec and attaches whatever collaborators
// the flags provide. The returned cleanup closes the database if one
// was opened.
func buildRegion(spec, fastaPath, dbPath string, length int64, circular bool) (*coord.Region, *store.DB, func(), error) {
	name, start, end, strand, err := coord.ParseSpec(spec)
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {}
	src := &coord.Source{}
	cfg := coord.Config{
		Name:     name,
		Start:    start,
		End:      end,
		Strand:   strand,
		Length:   length,
		Circular: circular,
		Source:   src,
	}

	var db *store.DB
	if dbPath == "" {
		dbPath = viper.GetString("db")
	}
	if dbPath != "" {
		db, err = store.Open(dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup = func() { db.Close() }
		info, err := db.LookupSeqRegion(name)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		if info == nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("unknown seq region %q in %s", name, dbPath)
		}
		cfg.Length = info.Length
		cfg.System = info.System
		cfg.Circular = info.Circular
		src.Attributes = db
	}

	if fastaPath == "" {
		fastaPath = viper.GetString("fasta")
	}
	if fastaPath != "" {
		fa, err := store.OpenFASTA(fastaPath)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		if cfg.Length == 0 {
			if n, ok := fa.Length(name); ok {
				cfg.Length = n
			}
		}
		src.Sequences = fa
	}

	region, err := coord.New(cfg)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return region, db, cleanup, nil
}
