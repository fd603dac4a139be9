// Package extract parses the two NEO source feeds into domain entities.
//
// Real-world feeds always contain some fraction of malformed rows, so both
// extractors are deliberately best-effort: a record that fails validation is
// logged, counted, and dropped, and extraction continues. Only structural
// failures — an unopenable file, a missing CSV header or column, a cad
// document without its "fields"/"data" keys — abort a feed, because there is
// no meaningful partial result for an unreadable source.
package extract

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
)

// Extractor reads the SBDB object feed and the CNEOS close-approach feed.
type Extractor struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Extractor reporting per-record failures to the given
// logger and metrics.
func New(logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	return &Extractor{logger: logger, metrics: metrics}
}

// LoadObjects opens the SBDB CSV file once, reads it fully, and returns the
// extracted objects. An open failure is a *domain.SourceReadError.
func (e *Extractor) LoadObjects(path string) ([]*domain.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.SourceReadError{Source: "object", Err: err}
	}
	defer f.Close()
	return e.ExtractObjects(f)
}

// LoadApproaches opens the cad JSON file once, reads it fully, and returns
// the extracted approaches. An open failure is a *domain.SourceReadError.
func (e *Extractor) LoadApproaches(path string) ([]*domain.CloseApproach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.SourceReadError{Source: "approach", Err: err}
	}
	defer f.Close()
	return e.ExtractApproaches(f)
}
