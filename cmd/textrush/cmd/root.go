package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrush/pkg/textrush/config"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath    string
	dicts         []string
	driver        string
	dbPath        string
	caseSensitive bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "textrush",
		Short:         "textrush: dictionary keyword extraction and replacement",
		Long:          "Find or replace thousands of keyword phrases in one pass over the text.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "YAML config file")
	pf.StringSliceVarP(&g.dicts, "dict", "d", nil, "dictionary file (.yaml/.yml or pipe format), repeatable")
	pf.StringVar(&g.driver, "driver", "", "dictionary store driver: memory, sqlite or bolt")
	pf.StringVar(&g.dbPath, "db", "", "dictionary store path")
	pf.BoolVar(&g.caseSensitive, "case-sensitive", false, "match keywords case-sensitively")

	root.AddCommand(
		newExtractCmd(g),
		newReplaceCmd(g),
		newKeywordsCmd(g),
		newFuzzyCmd(g),
		newImportCmd(g),
		newRemoveCmd(g),
		newWatchCmd(g),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
		return err
	}
	return nil
}

// resolveConfig reads --config, then lets command-line flags override it.
func (g *globalFlags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.Load(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Dictionaries = append(cfg.Dictionaries, g.dicts...)
	if g.dbPath != "" {
		cfg.Store.Path = g.dbPath
		if g.driver == "" && cfg.Store.Driver == config.DriverNone {
			cfg.Store.Driver = config.DriverSQLite
		}
	}
	if g.driver != "" {
		cfg.Store.Driver = g.driver
	}
	if cmd.Flags().Changed("case-sensitive") {
		cfg.CaseSensitive = g.caseSensitive
	}
	return cfg, cfg.Validate()
}

// load builds the processor. Invalid keywords are logged and skipped.
func (g *globalFlags) load(ctx context.Context, cmd *cobra.Command) (*config.Components, *config.Config, error) {
	cfg, err := g.resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	comp, err := (&config.Loader{Config: cfg}).Load(ctx)
	if err != nil {
		if comp == nil || !errors.Is(err, internalerr.ErrInvalidKeyword) {
			return nil, nil, err
		}
		log.Printf("warning: skipped keywords: %v", err)
	}
	return comp, cfg, nil
}
