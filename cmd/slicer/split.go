package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swingingsimian/ensembl/internal/coord"
)

func newSplitCmd() *cobra.Command {
	var length int64

	cmd := &cobra.Command{
		Use:   "split --length <n> <region>",
		Short: "Show the two-half decomposition of a region",
		Long: `Decompose a region on a circular reference into the two halves used
for every per-base operation: [start, reference length] and [1, end].
Useful for checking how a wrapping region will be queried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(args[0], length)
		},
	}

	cmd.Flags().Int64Var(&length, "length", 0, "Reference length")
	cmd.MarkFlagRequired("length")

	return cmd
}

func runSplit(spec string, length int64) error {
	name, start, end, strand, err := coord.ParseSpec(spec)
	if err != nil {
		return err
	}
	region, err := coord.New(coord.Config{
		Name:     name,
		Start:    start,
		End:      end,
		Strand:   strand,
		Length:   length,
		Circular: true,
	})
	if err != nil {
		return err
	}

	first, second := region.Split()
	fmt.Printf("region: %s length=%d wraps=%v\n", region, region.Length(), region.IsWrapped())
	fmt.Printf("first:  %s\n", first)
	fmt.Printf("second: %s\n", second)
	return nil
}
