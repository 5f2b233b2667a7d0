package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFuzzyCmd(g *globalFlags) *cobra.Command {
	var threshold float64
	c := &cobra.Command{
		Use:   "fuzzy QUERY",
		Short: "Find clean names whose phrases are close to QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, cfg, err := g.load(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer comp.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.FuzzyThreshold
			}
			for _, r := range comp.Processor.FuzzySearch(args[0], threshold) {
				fmt.Fprintf(cmd.OutOrStdout(), "%.3f\t%s\n", r.Similarity, r.CleanName)
			}
			return nil
		},
	}
	c.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum similarity in [0, 1] (default from config)")
	return c
}
