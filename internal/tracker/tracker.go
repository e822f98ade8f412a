// Package tracker implements the three tracker operations: scanning an
// event website, enriching tracked companies with contacts, and
// reporting membership changes since the last scan. The MCP tools and
// the CLI commands are thin adapters over this package.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/JAlbertCode/event-tracker/internal/store"
	"github.com/JAlbertCode/event-tracker/internal/types"
)

// ErrNoScanURL signals a change query when no event URL has been
// recorded by a previous scan, so there is nothing to re-extract from.
var ErrNoScanURL = errors.New("no event URL recorded from a previous scan")

// CompanyExtractor turns an event page URL into company records.
type CompanyExtractor interface {
	FromURL(ctx context.Context, url string) ([]types.Company, error)
}

// Enricher runs a full enrichment pass and reports how many new
// contacts were merged.
type Enricher interface {
	Run(ctx context.Context, sequenceID string) (int, error)
}

// Tracker wires the store, the page extractor and the enrichment
// pipeline into the externally visible operations.
type Tracker struct {
	store     *store.Store
	extractor CompanyExtractor
	enricher  Enricher
	now       func() time.Time
	log       zerolog.Logger
}

// New creates a tracker around explicit collaborator handles.
func New(st *store.Store, extractor CompanyExtractor, enricher Enricher, log zerolog.Logger) *Tracker {
	return &Tracker{
		store:     st,
		extractor: extractor,
		enricher:  enricher,
		now:       time.Now,
		log:       log,
	}
}

// Scan extracts companies from an event page, merges them into the
// tracked set and persists the snapshot. The scanned URL is remembered
// so later change queries can re-extract from the same page.
func (t *Tracker) Scan(ctx context.Context, url string) (ScanReport, error) {
	companies, err := t.extractor.FromURL(ctx, url)
	if err != nil {
		return ScanReport{}, err
	}

	merged := t.store.MergeCompanies(companies, t.now())
	t.store.SetLastURL(url)
	if err := t.store.Save(ctx); err != nil {
		return ScanReport{}, err
	}

	names := make([]string, 0, len(merged))
	for _, company := range merged {
		names = append(names, company.Name)
	}

	t.log.Info().Str("url", url).Int("companies", len(names)).Msg("event website scanned")
	return ScanReport{Names: names}, nil
}

// Enrich runs the enrichment pipeline against every tracked company.
func (t *Tracker) Enrich(ctx context.Context, sequenceID string) (EnrichReport, error) {
	added, err := t.enricher.Run(ctx, sequenceID)
	return EnrichReport{Added: added}, err
}

// Changes re-extracts the last-scanned event page and diffs the current
// company names against the tracked set. Before any scan has happened
// it reports NoPrior instead of failing.
func (t *Tracker) Changes(ctx context.Context) (ChangesReport, error) {
	last := t.store.LastCheck()
	if last == nil {
		return ChangesReport{NoPrior: true}, nil
	}

	url := t.store.LastURL()
	if url == "" {
		return ChangesReport{}, ErrNoScanURL
	}

	companies, err := t.extractor.FromURL(ctx, url)
	if err != nil {
		return ChangesReport{}, err
	}

	names := make([]string, 0, len(companies))
	for _, company := range companies {
		names = append(names, company.Name)
	}

	changes, err := t.store.DiffSinceLast(names)
	if errors.Is(err, store.ErrNoPriorData) {
		return ChangesReport{NoPrior: true}, nil
	}
	if err != nil {
		return ChangesReport{}, err
	}

	return ChangesReport{Since: *last, Added: changes.Added, Removed: changes.Removed}, nil
}
