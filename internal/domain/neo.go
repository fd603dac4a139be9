package domain

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NearEarthObject is a celestial body from the SBDB feed, identified by its
// primary designation. Two objects with the same designation are the same
// entity. The approach list starts empty and is populated exclusively by the
// catalog linkage pass.
type NearEarthObject struct {
	Designation string
	Name        string  // empty means the object has no IAU name
	Diameter    float64 // kilometers; NaN when unknown
	Hazardous   bool

	approaches []*CloseApproach
}

// NEOFields is the loosely-typed field bag for constructing a
// NearEarthObject. Source records have optional and missing fields, so all
// fields except Designation carry documented defaults: an unset Name means
// the object has no name, an unset Diameter becomes NaN.
type NEOFields struct {
	Designation string
	Name        string
	Diameter    *float64
	Hazardous   bool
}

// NewNearEarthObject validates the field bag and constructs an object.
// A missing designation returns a *ValidationError.
func NewNearEarthObject(f NEOFields) (*NearEarthObject, error) {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Designation, validation.Required),
	); err != nil {
		return nil, &ValidationError{Entity: "near-earth object", Err: err}
	}

	diameter := math.NaN()
	if f.Diameter != nil {
		diameter = *f.Diameter
	}

	return &NearEarthObject{
		Designation: f.Designation,
		Name:        f.Name,
		Diameter:    diameter,
		Hazardous:   f.Hazardous,
	}, nil
}

// ParseHazardFlag interprets the SBDB "pha" column: "" and "N" mean not
// hazardous, any other non-empty value means hazardous.
func ParseHazardFlag(flag string) bool {
	return flag != "" && flag != "N"
}

// Fullname is the designation alone for unnamed objects, otherwise
// "designation (name)".
func (n *NearEarthObject) Fullname() string {
	if n.Name == "" {
		return n.Designation
	}
	return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
}

// Approaches returns the linked close approaches in the order the linkage
// pass appended them, which is the input approach feed order.
func (n *NearEarthObject) Approaches() []*CloseApproach {
	return n.approaches
}

func (n *NearEarthObject) String() string {
	diameter := "an unknown diameter"
	if !math.IsNaN(n.Diameter) {
		diameter = fmt.Sprintf("a diameter of %.3f km", n.Diameter)
	}
	hazard := "is not potentially hazardous"
	if n.Hazardous {
		hazard = "is potentially hazardous"
	}
	return fmt.Sprintf("NEO %s has %s and %s.", n.Fullname(), diameter, hazard)
}

// Serialize produces the flat record form consumed by downstream writers.
// Name is an empty string when unset (the one place the text-oriented target
// represents "no name" that way); an unknown diameter passes the NaN
// sentinel through unsubstituted.
func (n *NearEarthObject) Serialize() NEORecord {
	return NEORecord{
		Designation:          n.Designation,
		Name:                 n.Name,
		DiameterKM:           OptionalFloat(n.Diameter),
		PotentiallyHazardous: n.Hazardous,
	}
}
