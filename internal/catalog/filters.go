package catalog

import (
	"time"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// Filter narrows a query over the approach collection. Nil fields impose no
// constraint. Bounds are inclusive. A NaN attribute fails every bound
// comparison, so approaches with unknown distance, velocity, or diameter
// are excluded by the corresponding filters rather than treated as zero.
type Filter struct {
	// Date matches approaches on exactly this UTC calendar date. StartDate
	// and EndDate bound the date range; all three may be combined.
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	MinDistance *float64 // au
	MaxDistance *float64

	MinVelocity *float64 // km/s
	MaxVelocity *float64

	// Diameter and hazard filters apply to the owning object; an unlinked
	// approach never matches them.
	MinDiameter *float64 // km
	MaxDiameter *float64
	Hazardous   *bool
}

func (f Filter) matches(ca *domain.CloseApproach) bool {
	date := ca.Time.UTC().Truncate(24 * time.Hour)
	if f.Date != nil && !date.Equal(f.Date.UTC().Truncate(24*time.Hour)) {
		return false
	}
	if f.StartDate != nil && date.Before(f.StartDate.UTC().Truncate(24*time.Hour)) {
		return false
	}
	if f.EndDate != nil && date.After(f.EndDate.UTC().Truncate(24*time.Hour)) {
		return false
	}

	if f.MinDistance != nil && !(ca.Distance >= *f.MinDistance) {
		return false
	}
	if f.MaxDistance != nil && !(ca.Distance <= *f.MaxDistance) {
		return false
	}
	if f.MinVelocity != nil && !(ca.Velocity >= *f.MinVelocity) {
		return false
	}
	if f.MaxVelocity != nil && !(ca.Velocity <= *f.MaxVelocity) {
		return false
	}

	if f.MinDiameter == nil && f.MaxDiameter == nil && f.Hazardous == nil {
		return true
	}
	neo := ca.NEO()
	if neo == nil {
		return false
	}
	if f.MinDiameter != nil && !(neo.Diameter >= *f.MinDiameter) {
		return false
	}
	if f.MaxDiameter != nil && !(neo.Diameter <= *f.MaxDiameter) {
		return false
	}
	if f.Hazardous != nil && neo.Hazardous != *f.Hazardous {
		return false
	}
	return true
}
