package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeywordsCmd(g *globalFlags) *cobra.Command {
	var stats bool
	c := &cobra.Command{
		Use:   "keywords",
		Short: "List every loaded phrase and its clean name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, _, err := g.load(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer comp.Close()

			out := cmd.OutOrStdout()
			if stats {
				fmt.Fprintf(out, "%s nodes=%d\n", comp.Processor, comp.Processor.Nodes())
				return nil
			}
			for _, kw := range comp.Processor.Keywords() {
				fmt.Fprintf(out, "%s\t%s\n", kw.Phrase, kw.CleanName)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&stats, "stats", false, "print processor size instead of the keyword list")
	return c
}
