// Package report renders query results in the two shapes downstream
// consumers expect: flat CSV rows and a JSON array of combined records.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// csvHeader lists the flat columns: the approach record followed by the
// owning object's record.
var csvHeader = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

// WriteCSV writes one row per approach. The text target carries the unknown
// sentinel literally, so an unknown diameter renders as "NaN" and an unset
// name as the empty string.
func WriteCSV(w io.Writer, approaches []*domain.CloseApproach) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ca := range approaches {
		rec := domain.Combine(ca)
		row := []string{
			rec.DatetimeUTC,
			formatFloat(rec.DistanceAU),
			formatFloat(rec.VelocityKmS),
			rec.NEO.Designation,
			rec.NEO.Name,
			formatFloat(rec.NEO.DiameterKM),
			strconv.FormatBool(rec.NEO.PotentiallyHazardous),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes an indented JSON array of combined records, the NEO
// fields nested under "neo". Unknown numerics become null (JSON has no NaN).
func WriteJSON(w io.Writer, approaches []*domain.CloseApproach) error {
	records := make([]domain.CombinedRecord, 0, len(approaches))
	for _, ca := range approaches {
		records = append(records, domain.Combine(ca))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func formatFloat(f domain.OptionalFloat) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}
