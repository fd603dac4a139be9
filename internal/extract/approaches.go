package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// Required cad fields.
const (
	fieldDesignation = "des"
	fieldTime        = "cd"
	fieldDistance    = "dist"
	fieldVelocity    = "v_rel"
)

// cadDocument is the column-oriented wire shape of the CNEOS close-approach
// API: a field-name manifest plus positional value rows.
type cadDocument struct {
	Fields []string `json:"fields"`
	Data   [][]any  `json:"data"`
}

// ExtractApproaches parses the cad JSON feed into CloseApproaches. The wire
// format separates schema from data, so each row is zipped against the
// manifest before field access. Source order is preserved; every result has
// a nil NEO reference because linkage is the catalog's job, not the
// extractor's — the object collection may not even exist yet.
func (e *Extractor) ExtractApproaches(r io.Reader) ([]*domain.CloseApproach, error) {
	var doc cadDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &domain.SourceReadError{Source: "approach", Err: err}
	}
	if len(doc.Fields) == 0 || doc.Data == nil {
		return nil, &domain.SourceReadError{
			Source: "approach",
			Err:    errors.New(`document missing "fields" or "data"`),
		}
	}

	idx := make(map[string]int, len(doc.Fields))
	for i, f := range doc.Fields {
		idx[f] = i
	}
	for _, f := range []string{fieldDesignation, fieldTime, fieldDistance, fieldVelocity} {
		if _, ok := idx[f]; !ok {
			return nil, &domain.SourceReadError{
				Source: "approach",
				Err:    fmt.Errorf("manifest missing field %q", f),
			}
		}
	}

	var approaches []*domain.CloseApproach
	for i, row := range doc.Data {
		ca, err := approachFromRow(row, idx)
		if err != nil {
			e.logger.Warn("skipping approach record", "row", i, "error", err)
			e.metrics.ApproachesSkipped.Inc()
			continue
		}
		approaches = append(approaches, ca)
		e.metrics.ApproachesExtracted.Inc()
	}
	return approaches, nil
}

// approachFromRow zips one positional value row against the manifest and
// constructs the approach.
func approachFromRow(row []any, idx map[string]int) (*domain.CloseApproach, error) {
	get := func(field string) string {
		if i := idx[field]; i < len(row) {
			return fieldString(row[i])
		}
		return ""
	}

	fields := domain.ApproachFields{
		Designation: get(fieldDesignation),
		Time:        get(fieldTime),
	}

	var err error
	if fields.Distance, err = optionalFloat(fieldDistance, get(fieldDistance)); err != nil {
		return nil, err
	}
	if fields.Velocity, err = optionalFloat(fieldVelocity, get(fieldVelocity)); err != nil {
		return nil, err
	}

	return domain.NewCloseApproach(fields)
}

// optionalFloat parses a numeric feed value: absent stays unset (NaN at
// construction), non-numeric is a malformed-record condition.
func optionalFloat(field, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &domain.ValidationError{
			Entity: "close approach",
			Err:    fmt.Errorf("non-numeric %s %q", field, raw),
		}
	}
	return &v, nil
}

// fieldString renders a JSON value as the feed's string form. The cad API
// emits all values as strings, but numbers are tolerated.
func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
