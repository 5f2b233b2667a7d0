package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrush/pkg/textrush/config"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
	"github.com/cognicore/textrush/pkg/textrush/store"
)

func newImportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Store dictionary files in the configured database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.resolveConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openConfiguredStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			lex, err := config.LoadLexicons(args)
			if err != nil {
				return err
			}
			rev, err := st.UpsertEntries(cmd.Context(), store.EntriesFromLexicon(lex))
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revision %s: %d entries\n", rev.ID, rev.Added)
			return nil
		},
	}
}

func newRemoveCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PHRASE...",
		Short: "Delete phrases from the configured database",
		Long: "Delete phrases from the configured database. Unless --case-sensitive is set,\n" +
			"every stored case variant of a phrase is deleted.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.resolveConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openConfiguredStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			rev, err := store.Delete(cmd.Context(), st, args, cfg.CaseSensitive)
			if err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revision %s: %d removed\n", rev.ID, rev.Removed)
			return nil
		},
	}
}

func openConfiguredStore(cmd *cobra.Command, cfg *config.Config) (store.Store, error) {
	if cfg.Store.Driver == config.DriverNone {
		return nil, fmt.Errorf("%w: no store configured, use --db or store.driver", internalerr.ErrStoreUnavailable)
	}
	st, err := config.OpenStore(cmd.Context(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
