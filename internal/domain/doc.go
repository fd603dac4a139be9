// Package domain models near-Earth objects (NEOs) and their recorded close
// approaches to Earth.
//
// # Data Sources
//
// NEO data comes from two independent JPL feeds that must be reconciled:
//
//   - The Small-Body Database (SBDB) export, a CSV file with one row per
//     object. Columns used: "pdes" (primary designation), "name" (IAU name,
//     often empty), "diameter" (kilometers, often empty), "pha" (potentially
//     hazardous asteroid flag). Extra columns are ignored.
//   - The CNEOS close-approach (cad) API document, column-oriented JSON with
//     a "fields" array naming the columns and a "data" array of positional
//     value rows. Fields used: "des" (designation), "cd" (calendar date),
//     "dist" (nominal distance, au), "v_rel" (relative velocity, km/s).
//
// # Feed Conventions
//
// Calendar date format ("cd" field):
//
//	YYYY-MMM-DD HH:MM with a three-letter English month abbreviation,
//	e.g. "1900-Jan-01 12:00". The feed has no sub-minute precision, so
//	formatted output drops seconds and round-trips losslessly at minute
//	resolution. Lower resolutions (date-only, hour-only) also appear.
//
// Unknown values:
//
//	Missing names are empty strings in the CSV; an object without a name is
//	displayed by designation alone. Missing diameters, distances, and
//	velocities are stored as IEEE NaN so that unknown-ness propagates
//	through arithmetic and comparisons instead of masquerading as zero.
//
// Hazard flag ("pha" column):
//
//	"" and "N" mean not hazardous; any other non-empty value ("Y") means
//	hazardous.
//
// # Linkage
//
// Each close approach carries the designation of its object as a private
// linkage key. A separate pass over both collections (see the catalog
// package) resolves keys into direct references: the approach's NEO pointer
// and the object's approach list are each mutated exactly once, and an
// approach whose designation matches no loaded object stays unlinked, which
// is valid data rather than an error.
package domain
