package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReplaceCmd(g *globalFlags) *cobra.Command {
	var asHTML bool
	c := &cobra.Command{
		Use:   "replace [FILE...]",
		Short: "Rewrite every keyword to its clean name",
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, _, err := g.load(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer comp.Close()

			inputs, err := readInputs(cmd.InOrStdin(), args, asHTML)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				fmt.Fprint(cmd.OutOrStdout(), comp.Processor.ReplaceKeywords(in.Text))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&asHTML, "html", false, "treat input as HTML and replace in its visible text")
	return c
}
