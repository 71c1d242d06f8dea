package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/susumOyaji/quotelens/internal/selector"
	"github.com/susumOyaji/quotelens/internal/store"
)

var selectorsCmd = &cobra.Command{
	Use:   "selectors",
	Short: "Synthesize, verify, and inspect structural queries",
}

var (
	genURL  string
	genText string
)

var selectorsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize selectors that re-locate a known text on a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genURL == "" || genText == "" {
			return eris.New("--url and --text are required")
		}
		body, err := fetchPage(cmd.Context(), genURL)
		if err != nil {
			return err
		}
		descs, err := selector.Synthesize(body, genText)
		if err != nil {
			return err
		}
		return printJSON(descs)
	},
}

var (
	verURL   string
	verQuery string
)

var selectorsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a selector against a page and show sample matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verURL == "" || verQuery == "" {
			return eris.New("--url and --selector are required")
		}
		body, err := fetchPage(cmd.Context(), verURL)
		if err != nil {
			return err
		}
		desc, err := selector.Verify(body, verQuery)
		if err != nil {
			return err
		}
		return printJSON(desc)
	},
}

var selectorsShowCmd = &cobra.Command{
	Use:   "show CODE",
	Short: "List selectors cached for an instrument code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}
		recs, err := st.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(recs)
	},
}

func init() {
	selectorsGenerateCmd.Flags().StringVar(&genURL, "url", "", "page URL to fetch")
	selectorsGenerateCmd.Flags().StringVar(&genText, "text", "", "target text to re-locate")

	selectorsVerifyCmd.Flags().StringVar(&verURL, "url", "", "page URL to fetch")
	selectorsVerifyCmd.Flags().StringVar(&verQuery, "selector", "", "structural query to verify")

	selectorsCmd.AddCommand(selectorsGenerateCmd, selectorsVerifyCmd, selectorsShowCmd)
	rootCmd.AddCommand(selectorsCmd)
}
