package domain

import (
	"math"
	"strconv"
	"time"
)

// OptionalFloat is a float64 whose NaN sentinel survives JSON, which has no
// NaN literal: NaN marshals as null, and null or absent unmarshals back to
// NaN. The in-memory value stays IEEE NaN so unknown-ness keeps propagating
// through arithmetic.
type OptionalFloat float64

// IsUnknown reports whether the value carries the NaN sentinel.
func (f OptionalFloat) IsUnknown() bool { return math.IsNaN(float64(f)) }

func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if f.IsUnknown() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(f), 'g', -1, 64)), nil
}

func (f *OptionalFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = OptionalFloat(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = OptionalFloat(v)
	return nil
}

// NEORecord is the flat serialized form of a NearEarthObject.
type NEORecord struct {
	Designation          string        `json:"designation"`
	Name                 string        `json:"name"`
	DiameterKM           OptionalFloat `json:"diameter_km"`
	PotentiallyHazardous bool          `json:"potentially_hazardous"`
}

// ApproachRecord is the flat serialized form of a CloseApproach.
type ApproachRecord struct {
	DatetimeUTC string        `json:"datetime_utc"`
	DistanceAU  OptionalFloat `json:"distance_au"`
	VelocityKmS OptionalFloat `json:"velocity_km_s"`
}

// CombinedRecord is the publication form: an approach record with its
// owning object's record nested under "neo".
type CombinedRecord struct {
	ApproachRecord
	NEO         NEORecord `json:"neo"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Combine merges an approach with its owning object's fields and stamps the
// processing time. An unlinked approach yields a zero NEO record with the
// unknown-diameter sentinel.
func Combine(ca *CloseApproach) CombinedRecord {
	rec := CombinedRecord{
		ApproachRecord: ca.Serialize(),
		NEO:            NEORecord{DiameterKM: OptionalFloat(math.NaN())},
		ProcessedAt:    clock.Now().UTC(),
	}
	if neo := ca.NEO(); neo != nil {
		rec.NEO = neo.Serialize()
	}
	return rec
}
