package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/susumOyaji/quotelens/internal/extract"
	"github.com/susumOyaji/quotelens/internal/fetcher"
	"github.com/susumOyaji/quotelens/internal/model"
)

// newFetcher builds the rate-limited HTTP client from config.
func newFetcher() *fetcher.Client {
	return fetcher.New(fetcher.Options{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    cfg.Fetch.Timeout(),
		MaxRetries: cfg.Fetch.MaxRetries,
		RatePerSec: cfg.Fetch.RatePerSec,
		Burst:      cfg.Fetch.Burst,
	})
}

// initService wires the fetcher and extraction service from config.
func initService() (*extract.Service, error) {
	return extract.NewService(newFetcher(), extract.Config{
		BaseURL:       cfg.Extract.BaseURL,
		MaxConcurrent: cfg.Extract.MaxConcurrent,
		Scan:          cfg.Scan.Heuristic(),
	})
}

// fetchPage fetches one URL with the configured client.
func fetchPage(ctx context.Context, url string) (string, error) {
	return newFetcher().Fetch(ctx, url)
}

// splitCodes parses a comma-separated code list, dropping empty entries.
func splitCodes(arg string) []string {
	var codes []string
	for _, part := range strings.Split(arg, ",") {
		if p := strings.TrimSpace(part); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}

// parseFields validates a list of requested field names.
func parseFields(names []string) ([]model.Field, error) {
	known := make(map[model.Field]bool, len(model.AllFields))
	for _, f := range model.AllFields {
		known[f] = true
	}
	var fields []model.Field
	for _, n := range names {
		f := model.Field(strings.TrimSpace(n))
		if !known[f] {
			return nil, eris.Errorf("unknown field %q", n)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
