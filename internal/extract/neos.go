package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// Required SBDB columns. Extra columns are ignored.
const (
	colDesignation = "pdes"
	colName        = "name"
	colDiameter    = "diameter"
	colHazard      = "pha"
)

// ExtractObjects parses the tabular SBDB feed into NearEarthObjects.
// The header row defines field names. Source order is preserved and
// duplicate designations are kept as separate entities; reconciling them is
// a catalog policy, not an extraction one.
func (e *Extractor) ExtractObjects(r io.Reader) ([]*domain.NearEarthObject, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // the feed occasionally pads or truncates rows

	header, err := cr.Read()
	if err != nil {
		return nil, &domain.SourceReadError{Source: "object", Err: fmt.Errorf("missing header row: %w", err)}
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{colDesignation, colName, colDiameter, colHazard} {
		if _, ok := idx[col]; !ok {
			return nil, &domain.SourceReadError{Source: "object", Err: fmt.Errorf("header missing column %q", col)}
		}
	}

	var neos []*domain.NearEarthObject
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			e.skipObject(line, err)
			continue
		}

		neo, err := objectFromRow(row, idx)
		if err != nil {
			e.skipObject(line, err)
			continue
		}
		neos = append(neos, neo)
		e.metrics.ObjectsExtracted.Inc()
	}
	return neos, nil
}

func (e *Extractor) skipObject(line int, err error) {
	e.logger.Warn("skipping object record", "line", line, "error", err)
	e.metrics.ObjectsSkipped.Inc()
}

// objectFromRow normalizes one CSV row into a field bag and constructs the
// object. The designation is taken verbatim: downstream serialization must
// reproduce it exactly, with no case or whitespace normalization.
func objectFromRow(row []string, idx map[string]int) (*domain.NearEarthObject, error) {
	get := func(col string) string {
		if i := idx[col]; i < len(row) {
			return row[i]
		}
		return ""
	}

	fields := domain.NEOFields{
		Designation: get(colDesignation),
		Name:        get(colName),
		Hazardous:   domain.ParseHazardFlag(strings.TrimSpace(get(colHazard))),
	}

	if raw := strings.TrimSpace(get(colDiameter)); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &domain.ValidationError{
				Entity: "near-earth object",
				Err:    fmt.Errorf("non-numeric diameter %q", raw),
			}
		}
		fields.Diameter = &d
	}

	return domain.NewNearEarthObject(fields)
}
