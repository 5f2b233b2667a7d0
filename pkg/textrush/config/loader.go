package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/cognicore/textrush/pkg/textrush"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
	"github.com/cognicore/textrush/pkg/textrush/lexicon"
	"github.com/cognicore/textrush/pkg/textrush/store"
	"github.com/cognicore/textrush/pkg/textrush/store/bolt"
	"github.com/cognicore/textrush/pkg/textrush/store/memstore"
	"github.com/cognicore/textrush/pkg/textrush/store/sqlite"
)

// Loader builds a processor from a Config: stored entries first, then
// dictionary files, so files override the store.
type Loader struct {
	Config *Config
}

// Components holds everything a Loader assembled.
type Components struct {
	Processor *textrush.Processor
	Lexicon   *lexicon.Lexicon // merged dictionary files
	Store     store.Store      // nil when no driver is configured
}

// Close releases the store, if any.
func (c *Components) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// Load opens the store, reads every dictionary and fills a new processor.
// Invalid keywords do not stop loading; they are returned together with
// the components.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lex, err := LoadLexicons(cfg.Dictionaries)
	if err != nil {
		return nil, err
	}

	st, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	comp := &Components{
		Processor: textrush.NewWithOptions(textrush.Options{
			CaseSensitive: cfg.CaseSensitive,
			FoldCacheSize: cfg.FoldCacheSize,
		}),
		Lexicon: lex,
		Store:   st,
	}

	var errs []error
	if st != nil {
		if err := store.Load(ctx, st, comp.Processor); err != nil {
			if !errors.Is(err, internalerr.ErrInvalidKeyword) {
				comp.Close()
				return nil, err
			}
			errs = append(errs, err)
		}
	}
	if err := comp.Processor.AddKeywordsWithCleanNames(keywordsFromLexicon(lex)); err != nil {
		errs = append(errs, fmt.Errorf("load dictionary: %w", err))
	}
	return comp, errors.Join(errs...)
}

// LoadLexicons reads and merges dictionary files in order.
func LoadLexicons(paths []string) (*lexicon.Lexicon, error) {
	merged := lexicon.New()
	for _, path := range paths {
		lex, err := lexicon.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load dictionary %s: %w", path, err)
		}
		merged.Merge(lex)
	}
	return merged, nil
}

// OpenStore opens the configured backend. DriverNone returns a nil store.
func OpenStore(ctx context.Context, sc StoreConfig) (store.Store, error) {
	switch sc.Driver {
	case DriverNone:
		return nil, nil
	case DriverMemory:
		return memstore.New(), nil
	case DriverSQLite:
		return sqlite.OpenSQLite(ctx, sc.Path)
	case DriverBolt:
		s, err := bolt.NewStore(sc.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, sc.Driver)
	}
}

func keywordsFromLexicon(lex *lexicon.Lexicon) []textrush.Keyword {
	pairs := lex.Pairs()
	keywords := make([]textrush.Keyword, len(pairs))
	for i, p := range pairs {
		keywords[i] = textrush.Keyword{Phrase: p.Phrase, CleanName: p.CleanName}
	}
	return keywords
}
