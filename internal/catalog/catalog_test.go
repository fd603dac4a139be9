package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func mustNEO(t *testing.T, f domain.NEOFields) *domain.NearEarthObject {
	t.Helper()
	neo, err := domain.NewNearEarthObject(f)
	require.NoError(t, err)
	return neo
}

func mustApproach(t *testing.T, f domain.ApproachFields) *domain.CloseApproach {
	t.Helper()
	ca, err := domain.NewCloseApproach(f)
	require.NoError(t, err)
	return ca
}

func TestCatalogLinksBothDirections(t *testing.T) {
	eros := mustNEO(t, domain.NEOFields{Designation: "433", Name: "Eros"})
	icarus := mustNEO(t, domain.NEOFields{Designation: "1566", Name: "Icarus"})

	a1 := mustApproach(t, domain.ApproachFields{Designation: "433", Time: "1900-Dec-27 01:30"})
	a2 := mustApproach(t, domain.ApproachFields{Designation: "1566", Time: "2020-May-31 00:00"})
	a3 := mustApproach(t, domain.ApproachFields{Designation: "433", Time: "2005-Jan-01 10:17"})

	cat := catalog.New(
		[]*domain.NearEarthObject{eros, icarus},
		[]*domain.CloseApproach{a1, a2, a3},
	)

	assert.Same(t, eros, a1.NEO())
	assert.Same(t, icarus, a2.NEO())
	assert.Same(t, eros, a3.NEO())

	require.Len(t, eros.Approaches(), 2)
	assert.Same(t, a1, eros.Approaches()[0])
	assert.Same(t, a3, eros.Approaches()[1], "approach order follows feed order")

	stats := cat.Stats()
	assert.Equal(t, 3, stats.Linked)
	assert.Equal(t, 0, stats.Unlinked)
}

func TestCatalogRetainsUnlinkedApproaches(t *testing.T) {
	eros := mustNEO(t, domain.NEOFields{Designation: "433"})
	orphan := mustApproach(t, domain.ApproachFields{Designation: "2019 XY", Time: "2020-Jan-02 06:45"})

	cat := catalog.New(
		[]*domain.NearEarthObject{eros},
		[]*domain.CloseApproach{orphan},
	)

	require.Len(t, cat.Approaches(), 1)
	assert.Nil(t, orphan.NEO())
	assert.Equal(t, 1, cat.Stats().Unlinked)
}

func TestCatalogDuplicateDesignationsLastWriteWins(t *testing.T) {
	first := mustNEO(t, domain.NEOFields{Designation: "433", Name: "Eros"})
	second := mustNEO(t, domain.NEOFields{Designation: "433", Name: "Eros Again"})
	ca := mustApproach(t, domain.ApproachFields{Designation: "433", Time: "1900-Dec-27 01:30"})

	cat := catalog.New(
		[]*domain.NearEarthObject{first, second},
		[]*domain.CloseApproach{ca},
	)

	assert.Same(t, second, cat.ByDesignation("433"))
	assert.Same(t, second, ca.NEO())
	assert.Empty(t, first.Approaches())

	// Both entities stay in the collection; only the index collapses.
	assert.Len(t, cat.Objects(), 2)
	assert.Equal(t, 1, cat.Stats().DuplicateDesignations)
}

func TestCatalogLookups(t *testing.T) {
	eros := mustNEO(t, domain.NEOFields{Designation: "433", Name: "Eros"})
	unnamed := mustNEO(t, domain.NEOFields{Designation: "2019 XY"})

	cat := catalog.New([]*domain.NearEarthObject{eros, unnamed}, nil)

	assert.Same(t, eros, cat.ByDesignation("433"))
	assert.Same(t, eros, cat.ByName("Eros"))
	assert.Same(t, unnamed, cat.ByDesignation("2019 XY"))

	assert.Nil(t, cat.ByDesignation("99999"))
	assert.Nil(t, cat.ByName("Ceres"))
	assert.Nil(t, cat.ByName(""), "empty name never matches unnamed objects")
}

func TestCatalogDesignationLookupIsExact(t *testing.T) {
	eros := mustNEO(t, domain.NEOFields{Designation: "433"})
	cat := catalog.New([]*domain.NearEarthObject{eros}, nil)

	assert.Nil(t, cat.ByDesignation(" 433"))
	assert.Nil(t, cat.ByDesignation("433 "))
}

func TestCatalogQueryPreservesInputOrder(t *testing.T) {
	eros := mustNEO(t, domain.NEOFields{Designation: "433", Diameter: floatPtr(16.84)})

	a1 := mustApproach(t, domain.ApproachFields{Designation: "433", Time: "2005-Jan-01 10:17", Distance: floatPtr(0.467)})
	a2 := mustApproach(t, domain.ApproachFields{Designation: "433", Time: "1900-Dec-27 01:30", Distance: floatPtr(0.314)})

	cat := catalog.New([]*domain.NearEarthObject{eros}, []*domain.CloseApproach{a1, a2})

	got := cat.Query(catalog.Filter{})
	require.Len(t, got, 2)
	assert.Same(t, a1, got[0])
	assert.Same(t, a2, got[1])
}
