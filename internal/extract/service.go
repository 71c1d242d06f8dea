// Package extract sequences the strategy cascade for each requested
// instrument code: structured schema lookup, then generic key-set search,
// then the heuristic DOM scan. Each code runs as an independent, stateless
// pipeline; batches fan out concurrently with partial-failure isolation.
package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/susumOyaji/quotelens/internal/heuristic"
	"github.com/susumOyaji/quotelens/internal/model"
	"github.com/susumOyaji/quotelens/internal/structured"
)

// DefaultBaseURL is the production quote page origin.
const DefaultBaseURL = "https://finance.yahoo.co.jp"

// Fetcher is the single external capability the core requires.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Config tunes a Service. Zero values fall back to production defaults.
type Config struct {
	BaseURL       string
	MaxConcurrent int
	Sources       []structured.SchemaSource
	Scan          heuristic.ScanConfig
}

// Service runs extraction pipelines. Safe for concurrent use: the schema
// and pattern tables are read-only and nothing else is shared between
// requests.
type Service struct {
	fetcher Fetcher
	cfg     Config
}

// NewService builds a Service and self-checks every built-in pattern
// table, so a malformed pattern fails at startup rather than at request
// time.
func NewService(f Fetcher, cfg Config) (*Service, error) {
	if f == nil {
		return nil, eris.New("extract: fetcher is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.Sources == nil {
		cfg.Sources = structured.DefaultSources()
	}
	if cfg.Scan == (heuristic.ScanConfig{}) {
		cfg.Scan = heuristic.DefaultScanConfig()
	}
	if err := heuristic.ValidatePatterns(heuristic.AllPatternSets()...); err != nil {
		return nil, err
	}
	return &Service{fetcher: f, cfg: cfg}, nil
}

// CodeResult is the per-code outcome of a batch request. Either Data or
// Error is set, never both; one code's failure never affects its siblings.
type CodeResult struct {
	Code  string             `json:"code"`
	Data  *model.QuoteRecord `json:"data,omitempty"`
	Error string             `json:"error,omitempty"`
}

// ExtractQuote runs the full cascade for one code.
func (s *Service) ExtractQuote(ctx context.Context, code string) (model.QuoteRecord, error) {
	url := quoteURL(s.cfg.BaseURL, code)
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return model.QuoteRecord{}, &FetchError{URL: url, Cause: err}
	}

	if rec, ok := s.structuredLookup(code, body); ok {
		return rec, nil
	}

	fields, err := s.scanDOM(ctx, code, url, body)
	if err != nil {
		return model.QuoteRecord{}, err
	}
	return resolve(code, fields)
}

// structuredLookup runs the schema locator and then the generic key-set
// search over the embedded data block. A missing or malformed block means
// the structured path is unavailable, never a request failure.
func (s *Service) structuredLookup(code, body string) (model.QuoteRecord, bool) {
	payload, err := structured.ExtractBlock(body)
	if err != nil {
		return model.QuoteRecord{}, false
	}
	tree, err := structured.ParseBlock(payload)
	if err != nil {
		zap.L().Debug("extract: structured path unavailable",
			zap.String("code", code),
			zap.Error(err),
		)
		return model.QuoteRecord{}, false
	}
	if rec, ok := structured.Locate(tree, code, s.cfg.Sources); ok {
		return rec, true
	}
	return structured.LocateGeneric(tree, code)
}

// DiscoverCandidates runs the heuristic scan as an independent discovery
// path, returning the full ranked candidate lists per field.
func (s *Service) DiscoverCandidates(ctx context.Context, code string) (*model.DiscoveredFieldSet, error) {
	if kindOf(code) == kindCurrency {
		return s.scanCurrency(ctx, code)
	}
	url := quoteURL(s.cfg.BaseURL, code)
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	return s.scanDOM(ctx, code, url, body)
}

// scanDOM dispatches the heuristic scan for the code's instrument kind.
func (s *Service) scanDOM(ctx context.Context, code, url, body string) (*model.DiscoveredFieldSet, error) {
	switch kindOf(code) {
	case kindCurrency:
		return s.scanCurrency(ctx, code)
	case kindIndex:
		doc, err := parseDoc(body)
		if err != nil {
			return nil, err
		}
		return heuristic.Scan(doc, code, url, heuristic.IndexPatterns(), s.cfg.Scan), nil
	default:
		doc, err := parseDoc(body)
		if err != nil {
			return nil, err
		}
		return heuristic.Scan(doc, code, url, heuristic.EquityPatterns(), s.cfg.Scan), nil
	}
}

// scanCurrency fetches both currency page variants and merges them under
// a fixed rule: identity, price and update time come from the rate page,
// change and change rate from the quote page.
func (s *Service) scanCurrency(ctx context.Context, code string) (*model.DiscoveredFieldSet, error) {
	rateCode, changeCode := currencyVariants(code)

	rateURL := quoteURL(s.cfg.BaseURL, rateCode)
	rateBody, err := s.fetcher.Fetch(ctx, rateURL)
	if err != nil {
		return nil, &FetchError{URL: rateURL, Cause: err}
	}
	rateDoc, err := parseDoc(rateBody)
	if err != nil {
		return nil, err
	}
	rateSet := heuristic.Scan(rateDoc, code, rateURL, heuristic.CurrencyRatePatterns(), s.cfg.Scan)

	changeURL := quoteURL(s.cfg.BaseURL, changeCode)
	changeBody, err := s.fetcher.Fetch(ctx, changeURL)
	if err != nil {
		return nil, &FetchError{URL: changeURL, Cause: err}
	}
	changeDoc, err := parseDoc(changeBody)
	if err != nil {
		return nil, err
	}
	changeSet := heuristic.Scan(changeDoc, code, changeURL, heuristic.CurrencyChangePatterns(), s.cfg.Scan)

	merged := model.NewDiscoveredFieldSet(code, rateURL)
	for _, f := range []model.Field{model.FieldName, model.FieldPrice, model.FieldUpdateTime} {
		if list := rateSet.Candidates[f]; len(list) > 0 {
			merged.Candidates[f] = list
		}
	}
	for _, f := range []model.Field{model.FieldPriceChange, model.FieldPriceChangeRate} {
		if list := changeSet.Candidates[f]; len(list) > 0 {
			merged.Candidates[f] = list
		}
	}
	return merged, nil
}

// requiredFields must each have at least one candidate for a DOM
// resolution to succeed.
var requiredFields = []model.Field{model.FieldName, model.FieldPrice}

// resolve turns a discovered field set into a record using the top-ranked
// candidate per field. Missing optional fields become NotAvailable and
// demote the status to partial.
func resolve(code string, fields *model.DiscoveredFieldSet) (model.QuoteRecord, error) {
	var missing []model.Field
	for _, f := range requiredFields {
		if _, ok := fields.Top(f); !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return model.QuoteRecord{}, &UnresolvedError{Code: code, Missing: missing}
	}

	status := model.StatusOK
	top := func(f model.Field) string {
		text, ok := fields.Top(f)
		if !ok {
			status = model.StatusPartial
			return model.NotAvailable
		}
		return text
	}

	rec := model.QuoteRecord{
		Code:            code,
		Name:            top(model.FieldName),
		Price:           top(model.FieldPrice),
		PriceChange:     top(model.FieldPriceChange),
		PriceChangeRate: top(model.FieldPriceChangeRate),
		UpdateTime:      top(model.FieldUpdateTime),
		Source:          model.SourceDOM,
	}
	rec.Status = status
	return rec, nil
}

// ExtractAll fans out one pipeline per code, bounded by MaxConcurrent.
// Results keep input order; a slow or failed code never blocks or fails
// its siblings. The optional fields list restricts which record fields
// are populated in the response.
func (s *Service) ExtractAll(ctx context.Context, codes []string, fields []model.Field) []CodeResult {
	results := make([]CodeResult, len(codes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			rec, err := s.ExtractQuote(gCtx, code)
			if err != nil {
				zap.L().Warn("extract: code failed",
					zap.String("code", code),
					zap.Error(err),
				)
				results[i] = CodeResult{Code: code, Error: err.Error()}
				return nil
			}
			filtered := rec.Select(fields)
			results[i] = CodeResult{Code: code, Data: &filtered}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func parseDoc(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "extract: parse document")
	}
	return doc, nil
}
