package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/textrush/internal/corpus"
	"github.com/cognicore/textrush/pkg/textrush"
	"github.com/cognicore/textrush/pkg/textrush/extract"
)

func newExtractCmd(g *globalFlags) *cobra.Command {
	var (
		strategy string
		withSpan bool
		runes    bool
		asHTML   bool
		jsonl    bool
	)
	c := &cobra.Command{
		Use:   "extract [FILE...]",
		Short: "Print the keywords found in each file (or stdin) as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, cfg, err := g.load(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer comp.Close()

			s := cfg.ParsedStrategy()
			if cmd.Flags().Changed("strategy") {
				if s, err = extract.ParseStrategy(strategy); err != nil {
					return err
				}
			}

			if jsonl {
				return extractCorpus(cmd, comp.Processor, args, s, withSpan || runes, runes)
			}

			inputs, err := readInputs(cmd.InOrStdin(), args, asHTML)
			if err != nil {
				return err
			}
			for _, in := range inputs {
				res := extractOne(comp.Processor, in, s, withSpan || runes, runes)
				if err := writeJSONLine(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&strategy, "strategy", "s", "", "extraction strategy: all or longest (default from config)")
	f.BoolVar(&withSpan, "span", false, "include byte spans")
	f.BoolVar(&runes, "runes", false, "include rune spans instead of byte spans")
	f.BoolVar(&asHTML, "html", false, "treat input as HTML and match only visible text")
	f.BoolVar(&jsonl, "jsonl", false, `treat input as JSON lines of {"id", "text"} documents`)
	return c
}

func extractOne(p *textrush.Processor, in input, s extract.Strategy, spans, runes bool) extractResult {
	res := extractResult{Source: in.Source}
	if !spans {
		res.Keywords = p.ExtractKeywords(in.Text, s)
		return res
	}
	var matches []extract.Match
	if runes {
		matches = p.ExtractKeywordsWithRuneSpan(in.Text, s)
	} else {
		matches = p.ExtractKeywordsWithSpan(in.Text, s)
	}
	res.Spans = toJSONMatches(matches)
	return res
}

// extractCorpus handles --jsonl input, one output line per document.
func extractCorpus(cmd *cobra.Command, p *textrush.Processor, files []string, s extract.Strategy, spans, runes bool) error {
	var docs []corpus.Document
	var sources []string
	if len(files) == 0 {
		d, err := corpus.ReadJSONL(cmd.InOrStdin(), "stdin")
		if err != nil {
			return err
		}
		docs = d
		for _, doc := range d {
			sources = append(sources, doc.ID)
		}
	}
	for _, path := range files {
		d, err := corpus.LoadJSONL(path)
		if err != nil {
			return err
		}
		docs = append(docs, d...)
		for _, doc := range d {
			sources = append(sources, path+"#"+doc.ID)
		}
	}

	var results []extractResult
	switch {
	case runes:
		for i, doc := range docs {
			results = append(results, extractOne(p, input{Source: sources[i], Text: doc.Text}, s, true, true))
		}
	case spans:
		for i, matches := range p.ExtractKeywordsWithSpanFromList(corpus.Texts(docs), s) {
			results = append(results, extractResult{Source: sources[i], Spans: toJSONMatches(matches)})
		}
	default:
		for i, names := range p.ExtractKeywordsFromList(corpus.Texts(docs), s) {
			results = append(results, extractResult{Source: sources[i], Keywords: names})
		}
	}

	for _, res := range results {
		if err := writeJSONLine(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	}
	return nil
}
