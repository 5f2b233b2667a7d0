package cmd

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/textrush/internal/watch"
	"github.com/cognicore/textrush/pkg/textrush"
	"github.com/cognicore/textrush/pkg/textrush/config"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var (
		debounce time.Duration
		asHTML   bool
	)
	c := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-extract FILE whenever it or a dictionary changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			comp, cfg, err := g.load(ctx, cmd)
			if err != nil {
				return err
			}
			comp.Close()

			s := cfg.ParsedStrategy()
			target := args[0]
			h := textrush.NewHandle(comp.Processor)
			run := func() {
				in, err := readInputs(nil, []string{target}, asHTML)
				if err != nil {
					log.Printf("read %s: %v", target, err)
					return
				}
				res := extractOne(h.Load(), in[0], s, true, false)
				if err := writeJSONLine(cmd.OutOrStdout(), res); err != nil {
					log.Printf("write: %v", err)
				}
			}
			run()

			dicts := make(map[string]bool, len(cfg.Dictionaries))
			for _, d := range cfg.Dictionaries {
				if abs, err := filepath.Abs(d); err == nil {
					dicts[abs] = true
				}
			}

			w, err := watch.NewWatcher(debounce)
			if err != nil {
				return err
			}
			defer w.Stop()

			paths := append([]string{target}, cfg.Dictionaries...)
			err = w.Watch(paths, func(path string) {
				if dicts[path] {
					if err := reload(ctx, cfg, h); err != nil {
						log.Printf("reload dictionaries: %v", err)
						return
					}
					log.Printf("reloaded %s (%d keywords)", path, h.Load().Len())
				}
				run()
			}, func(err error) {
				log.Printf("watch: %v", err)
			})
			if err != nil {
				return err
			}
			log.Printf("watching %d files", len(paths))

			<-ctx.Done()
			return nil
		},
	}
	c.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before reacting to a change")
	c.Flags().BoolVar(&asHTML, "html", false, "treat FILE as HTML")
	return c
}

// reload rebuilds the processor and swaps it in. Queries running on the
// previous processor finish against it.
func reload(ctx context.Context, cfg *config.Config, h *textrush.Handle) error {
	comp, err := (&config.Loader{Config: cfg}).Load(ctx)
	if err != nil {
		if comp == nil || !errors.Is(err, internalerr.ErrInvalidKeyword) {
			return err
		}
		log.Printf("warning: skipped keywords: %v", err)
	}
	comp.Close()
	h.Swap(comp.Processor)
	return nil
}
