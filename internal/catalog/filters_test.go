package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

func boolPtr(v bool) *bool { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// filterCatalog builds a small linked catalog used across the filter tests:
// two approaches of a hazardous object, one of a non-hazardous object with
// unknown diameter, and one unlinked approach.
func filterCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	icarus := mustNEO(t, domain.NEOFields{
		Designation: "1566", Name: "Icarus", Diameter: floatPtr(1.0), Hazardous: true,
	})
	tantalus := mustNEO(t, domain.NEOFields{
		Designation: "2102", Name: "Tantalus", Hazardous: false,
	})

	approaches := []*domain.CloseApproach{
		mustApproach(t, domain.ApproachFields{
			Designation: "1566", Time: "2015-Jun-16 15:30",
			Distance: floatPtr(0.054), Velocity: floatPtr(27.0),
		}),
		mustApproach(t, domain.ApproachFields{
			Designation: "1566", Time: "2020-May-31 00:00",
			Distance: floatPtr(0.042), Velocity: floatPtr(28.1),
		}),
		mustApproach(t, domain.ApproachFields{
			Designation: "2102", Time: "2020-May-31 23:59",
			Distance: floatPtr(0.3), Velocity: floatPtr(9.9),
		}),
		mustApproach(t, domain.ApproachFields{
			Designation: "2019 XY", Time: "2020-Jan-02 06:45",
			Distance: floatPtr(0.021),
		}),
	}

	return catalog.New([]*domain.NearEarthObject{icarus, tantalus}, approaches)
}

func TestFilterDate(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{Date: datePtr(2020, time.May, 31)})
	require.Len(t, got, 2, "both approaches on that date match regardless of time of day")
	assert.Equal(t, "1566", got[0].Designation())
	assert.Equal(t, "2102", got[1].Designation())
}

func TestFilterDateRange(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{
		StartDate: datePtr(2020, time.January, 1),
		EndDate:   datePtr(2020, time.December, 31),
	})
	assert.Len(t, got, 3)

	// Bounds are inclusive.
	got = cat.Query(catalog.Filter{
		StartDate: datePtr(2015, time.June, 16),
		EndDate:   datePtr(2015, time.June, 16),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "1566", got[0].Designation())
}

func TestFilterDistanceAndVelocity(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{MaxDistance: floatPtr(0.05)})
	assert.Len(t, got, 2)

	got = cat.Query(catalog.Filter{
		MinDistance: floatPtr(0.04),
		MaxDistance: floatPtr(0.06),
		MinVelocity: floatPtr(28.0),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 0.042, got[0].Distance)
}

func TestFilterUnknownValueFailsBounds(t *testing.T) {
	cat := filterCatalog(t)

	// The unlinked approach has unknown velocity; any velocity bound must
	// exclude it rather than treating unknown as zero.
	got := cat.Query(catalog.Filter{MaxVelocity: floatPtr(100.0)})
	for _, ca := range got {
		assert.NotEqual(t, "2019 XY", ca.Designation())
	}
}

func TestFilterHazardous(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{Hazardous: boolPtr(true)})
	require.Len(t, got, 2)
	for _, ca := range got {
		assert.Equal(t, "1566", ca.Designation())
	}

	got = cat.Query(catalog.Filter{Hazardous: boolPtr(false)})
	require.Len(t, got, 1)
	assert.Equal(t, "2102", got[0].Designation())
}

func TestFilterDiameter(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{MinDiameter: floatPtr(0.5)})
	require.Len(t, got, 2)
	for _, ca := range got {
		assert.Equal(t, "1566", ca.Designation())
	}

	// Tantalus has an unknown diameter, so diameter bounds exclude it.
	got = cat.Query(catalog.Filter{MaxDiameter: floatPtr(100.0)})
	for _, ca := range got {
		assert.NotEqual(t, "2102", ca.Designation())
	}
}

func TestFilterNEOFieldsExcludeUnlinked(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{Hazardous: boolPtr(false)})
	for _, ca := range got {
		assert.NotNil(t, ca.NEO(), "object-attribute filters never match unlinked approaches")
	}
}

func TestFilterCombination(t *testing.T) {
	cat := filterCatalog(t)

	got := cat.Query(catalog.Filter{
		Date:        datePtr(2020, time.May, 31),
		Hazardous:   boolPtr(true),
		MaxDistance: floatPtr(0.05),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 0.042, got[0].Distance)
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	cat := filterCatalog(t)
	assert.Len(t, cat.Query(catalog.Filter{}), 4)
}
