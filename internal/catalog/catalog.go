// Package catalog joins the two extracted feed collections into a
// cross-referenced object graph and answers lookups and queries over it.
//
// The catalog's slices are the sole owners of the entities; the NEO pointer
// on each approach and the approach list on each object are non-owning
// relation links populated once, here, so both directions traverse in O(1)
// without ownership cycles.
package catalog

import (
	"github.com/couchcryptid/neo-data-etl/internal/domain"
)

// Catalog holds the linked collections and the designation index.
type Catalog struct {
	neos       []*domain.NearEarthObject
	approaches []*domain.CloseApproach

	byDesignation map[string]*domain.NearEarthObject
	byName        map[string]*domain.NearEarthObject

	stats LinkStats
}

// LinkStats summarizes the linkage pass.
type LinkStats struct {
	Linked                int
	Unlinked              int
	DuplicateDesignations int
}

// New builds the designation index over the objects and links each approach
// to its owner. Designations are unique after extraction policy; if
// duplicates slipped through, the index is last-write-wins in source order
// and the earlier duplicate — still present in the object collection —
// becomes unreachable by designation and collects no approaches. Duplicates
// are counted so callers can surface the inconsistency.
//
// An approach whose designation matches no loaded object is retained
// unlinked: it represents an approach for an object absent from the object
// feed, not an error.
func New(neos []*domain.NearEarthObject, approaches []*domain.CloseApproach) *Catalog {
	c := &Catalog{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]*domain.NearEarthObject, len(neos)),
		byName:        make(map[string]*domain.NearEarthObject, len(neos)),
	}

	for _, neo := range neos {
		if _, exists := c.byDesignation[neo.Designation]; exists {
			c.stats.DuplicateDesignations++
		}
		c.byDesignation[neo.Designation] = neo
		if neo.Name != "" {
			c.byName[neo.Name] = neo
		}
	}

	for _, ca := range approaches {
		neo, ok := c.byDesignation[ca.Designation()]
		if !ok {
			c.stats.Unlinked++
			continue
		}
		ca.LinkTo(neo)
		c.stats.Linked++
	}

	return c
}

// Objects returns the object collection in source order, duplicates
// included.
func (c *Catalog) Objects() []*domain.NearEarthObject { return c.neos }

// Approaches returns the approach collection in source order, unlinked
// approaches included.
func (c *Catalog) Approaches() []*domain.CloseApproach { return c.approaches }

// ByDesignation returns the object with the given designation, or nil.
func (c *Catalog) ByDesignation(designation string) *domain.NearEarthObject {
	return c.byDesignation[designation]
}

// ByName returns the object with the given IAU name, or nil.
func (c *Catalog) ByName(name string) *domain.NearEarthObject {
	if name == "" {
		return nil
	}
	return c.byName[name]
}

// Stats returns the linkage summary.
func (c *Catalog) Stats() LinkStats { return c.stats }

// Query returns the approaches matching every set filter field, in input
// order.
func (c *Catalog) Query(f Filter) []*domain.CloseApproach {
	var out []*domain.CloseApproach
	for _, ca := range c.approaches {
		if f.matches(ca) {
			out = append(out, ca)
		}
	}
	return out
}
