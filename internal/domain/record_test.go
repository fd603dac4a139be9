package domain_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

func TestOptionalFloat_MarshalsNaNAsNull(t *testing.T) {
	data, err := json.Marshal(domain.OptionalFloat(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(domain.OptionalFloat(16.84))
	require.NoError(t, err)
	assert.Equal(t, "16.84", string(data))
}

func TestOptionalFloat_UnmarshalsNullAsUnknown(t *testing.T) {
	var f domain.OptionalFloat
	require.NoError(t, json.Unmarshal([]byte("null"), &f))
	assert.True(t, f.IsUnknown())

	require.NoError(t, json.Unmarshal([]byte("0.314"), &f))
	assert.Equal(t, domain.OptionalFloat(0.314), f)
}

func TestNEORecordJSON(t *testing.T) {
	rec := domain.NEORecord{
		Designation:          "433",
		Name:                 "Eros",
		DiameterKM:           16.84,
		PotentiallyHazardous: false,
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"designation":"433","name":"Eros","diameter_km":16.84,"potentially_hazardous":false}`,
		string(data))
}

func TestCombine(t *testing.T) {
	fixed := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	defer domain.SetClock(nil)

	neo, err := domain.NewNearEarthObject(domain.NEOFields{
		Designation: "433",
		Name:        "Eros",
		Diameter:    floatPtr(16.84),
	})
	require.NoError(t, err)
	ca, err := domain.NewCloseApproach(domain.ApproachFields{
		Designation: "433",
		Time:        "1900-Dec-27 01:30",
		Distance:    floatPtr(0.314),
		Velocity:    floatPtr(5.58),
	})
	require.NoError(t, err)
	ca.LinkTo(neo)

	rec := domain.Combine(ca)
	assert.Equal(t, "1900-12-27 01:30", rec.DatetimeUTC)
	assert.Equal(t, "433", rec.NEO.Designation)
	assert.Equal(t, "Eros", rec.NEO.Name)
	assert.True(t, rec.ProcessedAt.Equal(fixed))

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"datetime_utc": "1900-12-27 01:30",
		"distance_au": 0.314,
		"velocity_km_s": 5.58,
		"neo": {
			"designation": "433",
			"name": "Eros",
			"diameter_km": 16.84,
			"potentially_hazardous": false
		},
		"processed_at": "2025-06-01T12:00:00Z"
	}`, string(data))
}

func TestCombine_UnlinkedApproach(t *testing.T) {
	ca, err := domain.NewCloseApproach(domain.ApproachFields{
		Designation: "2019 XY",
		Time:        "2020-Jan-02 06:45",
	})
	require.NoError(t, err)

	rec := domain.Combine(ca)
	assert.Empty(t, rec.NEO.Designation)
	assert.True(t, rec.NEO.DiameterKM.IsUnknown())
	assert.True(t, rec.DistanceAU.IsUnknown())
}
