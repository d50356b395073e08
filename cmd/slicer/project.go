package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swingingsimian/ensembl/internal/project"
)

func newProjectCmd() *cobra.Command {
	var (
		dbPath string
		target string
	)

	cmd := &cobra.Command{
		Use:   "project --db <file> --to <coord-system[:version]> <region>",
		Short: "Project a region onto another coordinate system",
		Long: `Project a region spec of the form name:start-end[:strand] onto the
named target coordinate system, printing one line per projection
segment. Unmapped stretches advance the logical coordinates without
producing a segment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(args[0], dbPath, target)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Assembly database (DuckDB)")
	cmd.Flags().StringVar(&target, "to", "", "Target coordinate system, name or name:version")
	cmd.MarkFlagRequired("db")
	cmd.MarkFlagRequired("to")

	return cmd
}

func runProject(spec, dbPath, target string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	region, db, cleanup, err := buildRegion(spec, "", dbPath, 0, false)
	if err != nil {
		return err
	}
	defer cleanup()
	db.SetLogger(logger)

	targetName, targetVersion := target, ""
	if i := strings.Index(target, ":"); i >= 0 {
		targetName, targetVersion = target[:i], target[i+1:]
	}

	projector := project.NewProjector(db, db, db)
	projector.SetLogger(logger)

	segments, err := projector.Project(region, targetName, targetVersion)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		fmt.Printf("%s: no projection onto %s\n", region, target)
		return nil
	}
	for _, seg := range segments {
		fmt.Println(seg)
	}
	return nil
}
