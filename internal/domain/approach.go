package domain

import (
	"fmt"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CloseApproach is a recorded instance of an NEO passing near Earth. The
// designation is a private linkage key; the NEO reference is nil until the
// catalog linkage pass resolves it.
type CloseApproach struct {
	designation string

	Time     time.Time // UTC instant of closest approach
	Distance float64   // nominal distance in au; NaN when absent
	Velocity float64   // relative velocity in km/s; NaN when absent

	neo *NearEarthObject
}

// ApproachFields is the loosely-typed field bag for constructing a
// CloseApproach. Time is the raw cd-format string; Distance and Velocity
// default to NaN when unset.
type ApproachFields struct {
	Designation string
	Time        string
	Distance    *float64
	Velocity    *float64
}

// NewCloseApproach validates the field bag and constructs an approach.
// A missing designation or time returns a *ValidationError; an unparsable
// time returns the normalizer's *FormatError.
func NewCloseApproach(f ApproachFields) (*CloseApproach, error) {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Designation, validation.Required),
		validation.Field(&f.Time, validation.Required),
	); err != nil {
		return nil, &ValidationError{Entity: "close approach", Err: err}
	}

	t, err := ParseApproachTime(f.Time)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		// Empty input parses to the unset instant, but approach time is
		// required, so unset propagates as a construction failure.
		return nil, &ValidationError{Entity: "close approach", Err: fmt.Errorf("time is required")}
	}

	distance := math.NaN()
	if f.Distance != nil {
		distance = *f.Distance
	}
	velocity := math.NaN()
	if f.Velocity != nil {
		velocity = *f.Velocity
	}

	return &CloseApproach{
		designation: f.Designation,
		Time:        t,
		Distance:    distance,
		Velocity:    velocity,
	}, nil
}

// Designation returns the linkage key identifying the owning object.
func (ca *CloseApproach) Designation() string { return ca.designation }

// NEO returns the owning object, or nil before linkage and for approaches
// whose designation matched no loaded object.
func (ca *CloseApproach) NEO() *NearEarthObject { return ca.neo }

// LinkTo resolves the linkage key into direct references: the approach's
// object pointer and the object's approach list are each mutated exactly
// once, here. Only the catalog linkage pass calls this.
func (ca *CloseApproach) LinkTo(neo *NearEarthObject) {
	ca.neo = neo
	neo.approaches = append(neo.approaches, ca)
}

// TimeStr is the approach time in the canonical minute-resolution form.
func (ca *CloseApproach) TimeStr() string {
	return FormatApproachTime(ca.Time)
}

// String requires the NEO reference to be set; calling it before linkage is
// a programming error, not a recoverable condition.
func (ca *CloseApproach) String() string {
	return fmt.Sprintf("On %s, %q approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		ca.TimeStr(), ca.neo.Fullname(), ca.Distance, ca.Velocity)
}

// Serialize produces the flat record form consumed by downstream writers.
// The NEO reference is deliberately excluded; callers merge in NEO fields
// via Combine when producing combined records.
func (ca *CloseApproach) Serialize() ApproachRecord {
	return ApproachRecord{
		DatetimeUTC: ca.TimeStr(),
		DistanceAU:  OptionalFloat(ca.Distance),
		VelocityKmS: OptionalFloat(ca.Velocity),
	}
}
