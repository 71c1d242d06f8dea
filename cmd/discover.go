package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/susumOyaji/quotelens/internal/model"
	"github.com/susumOyaji/quotelens/internal/selector"
	"github.com/susumOyaji/quotelens/internal/store"
)

var discoverSave bool

var discoverCmd = &cobra.Command{
	Use:   "discover CODE",
	Short: "Run the heuristic scan and print ranked candidates per field",
	Long:  "Scans the instrument's page(s) with the DOM pattern tables and prints every candidate with its score and provenance. With --save, the best selector per field is synthesized and cached for later inspection.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]

		svc, err := initService()
		if err != nil {
			return err
		}

		fields, err := svc.DiscoverCandidates(cmd.Context(), code)
		if err != nil {
			return err
		}
		if err := printJSON(fields); err != nil {
			return err
		}

		if discoverSave {
			return saveSelectors(cmd.Context(), fields)
		}
		return nil
	},
}

// saveSelectors synthesizes a selector from each field's top candidate and
// caches the best one per (code, field).
func saveSelectors(ctx context.Context, fields *model.DiscoveredFieldSet) error {
	body, err := fetchPage(ctx, fields.URL)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	for _, field := range model.AllFields {
		text, ok := fields.Top(field)
		if !ok {
			continue
		}
		descs, err := selector.Synthesize(body, text)
		if err != nil {
			return err
		}
		if len(descs) == 0 {
			zap.L().Info("no selector synthesized",
				zap.String("code", fields.Code),
				zap.String("field", string(field)),
			)
			continue
		}
		best := descs[0]
		if err := st.Save(ctx, store.SelectorRecord{
			Code:       fields.Code,
			Field:      field,
			Query:      best.Query,
			MatchCount: best.MatchCount,
			SampleText: text,
		}); err != nil {
			return err
		}
		zap.L().Info("selector cached",
			zap.String("code", fields.Code),
			zap.String("field", string(field)),
			zap.String("selector", best.Query),
			zap.Int("matches", best.MatchCount),
		)
	}
	return nil
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false,
		"synthesize and cache the best selector per resolved field")
	rootCmd.AddCommand(discoverCmd)
}
