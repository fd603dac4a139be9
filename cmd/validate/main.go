// Command validate performs end-to-end data integrity checks across the mock
// fixtures: the object CSV, the approach JSON, and the combined JSON the
// pipeline produces from them. It verifies record counts, linkage
// consistency, and serialization correctness.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -neo-csv data/mock/neos.csv \
//	  -cad-json data/mock/cad.json \
//	  -combined-json data/mock/combined.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/couchcryptid/neo-data-etl/internal/extract"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	neoCSV := flag.String("neo-csv", "", "path to the object CSV fixture")
	cadJSON := flag.String("cad-json", "", "path to the approach JSON fixture")
	combinedJSON := flag.String("combined-json", "", "path to the combined JSON fixture")
	flag.Parse()

	if *neoCSV == "" || *cadJSON == "" || *combinedJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*neoCSV, *cadJSON, *combinedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(neoCSVPath, cadJSONPath, combinedJSONPath string) int {
	// Fix the clock to match genmock so processed_at stamps compare equal.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== NEO Data Integrity Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := extract.New(logger, observability.NewMetricsForTesting())

	neos, err := extractor.LoadObjects(neoCSVPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load object feed: %v\n", err)
		return 1
	}
	approaches, err := extractor.LoadApproaches(cadJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load approach feed: %v\n", err)
		return 1
	}
	cat := catalog.New(neos, approaches)

	combined, err := loadJSON[domain.CombinedRecord](combinedJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load combined JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateExtraction(cat),
		validateLinkage(cat),
		validateCombined(cat, combined),
		validateSerialization(combined),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d objects, %d approaches, %d combined\n",
		len(cat.Objects()), len(cat.Approaches()), len(combined))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Extraction ──
// Validates the per-record invariants of both extracted collections.

func validateExtraction(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 1: Extraction (feed invariants)"}

	for i, neo := range cat.Objects() {
		if neo.Designation == "" {
			p.errorf("object %d: empty designation", i)
		}
		if neo.Diameter < 0 {
			p.errorf("object %d (%s): negative diameter %g", i, neo.Designation, neo.Diameter)
		}
	}

	for i, ca := range cat.Approaches() {
		if ca.Designation() == "" {
			p.errorf("approach %d: empty designation", i)
		}
		if ca.Time.IsZero() {
			p.errorf("approach %d (%s): zero time", i, ca.Designation())
		}
		if !ca.Time.Equal(ca.Time.UTC()) {
			p.errorf("approach %d (%s): time not UTC", i, ca.Designation())
		}
	}
	return p
}

// ── Phase 2: Linkage ──
// Validates that the bidirectional references are consistent.

func validateLinkage(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 2: Linkage (bidirectional refs)"}

	stats := cat.Stats()
	var linked, unlinked int
	for i, ca := range cat.Approaches() {
		neo := ca.NEO()
		if neo == nil {
			unlinked++
			if cat.ByDesignation(ca.Designation()) != nil {
				p.errorf("approach %d (%s): unlinked despite matching object", i, ca.Designation())
			}
			continue
		}
		linked++
		if neo.Designation != ca.Designation() {
			p.errorf("approach %d: linked to %s but designates %s", i, neo.Designation, ca.Designation())
		}
		found := false
		for _, back := range neo.Approaches() {
			if back == ca {
				found = true
				break
			}
		}
		if !found {
			p.errorf("approach %d (%s): missing from object's approach list", i, ca.Designation())
		}
	}

	if linked != stats.Linked {
		p.errorf("linked count: stats say %d, observed %d", stats.Linked, linked)
	}
	if unlinked != stats.Unlinked {
		p.errorf("unlinked count: stats say %d, observed %d", stats.Unlinked, unlinked)
	}

	for _, neo := range cat.Objects() {
		for j, ca := range neo.Approaches() {
			if ca.NEO() != neo && cat.ByDesignation(neo.Designation) == neo {
				p.errorf("object %s: approach %d points to a different object", neo.Designation, j)
			}
		}
	}
	return p
}

// ── Phase 3: Combined output ──
// Validates the combined JSON against a fresh run over the feeds.

func validateCombined(cat *catalog.Catalog, combined []domain.CombinedRecord) *phase {
	p := &phase{name: "Phase 3: Combined output (vs fresh run)"}

	var expected []domain.CombinedRecord
	for _, ca := range cat.Approaches() {
		if ca.NEO() != nil {
			expected = append(expected, domain.Combine(ca))
		}
	}

	if len(combined) != len(expected) {
		p.errorf("count: expected %d, got %d", len(expected), len(combined))
		return p
	}

	for i := range expected {
		want, got := expected[i], combined[i]
		if got.DatetimeUTC != want.DatetimeUTC {
			p.errorf("record %d: datetime_utc: expected %q, got %q", i, want.DatetimeUTC, got.DatetimeUTC)
		}
		if !optionalEq(got.DistanceAU, want.DistanceAU) {
			p.errorf("record %d: distance_au: expected %v, got %v", i, want.DistanceAU, got.DistanceAU)
		}
		if !optionalEq(got.VelocityKmS, want.VelocityKmS) {
			p.errorf("record %d: velocity_km_s: expected %v, got %v", i, want.VelocityKmS, got.VelocityKmS)
		}
		if got.NEO.Designation != want.NEO.Designation {
			p.errorf("record %d: designation: expected %q, got %q", i, want.NEO.Designation, got.NEO.Designation)
		}
		if got.NEO.Name != want.NEO.Name {
			p.errorf("record %d: name: expected %q, got %q", i, want.NEO.Name, got.NEO.Name)
		}
		if !optionalEq(got.NEO.DiameterKM, want.NEO.DiameterKM) {
			p.errorf("record %d: diameter_km: expected %v, got %v", i, want.NEO.DiameterKM, got.NEO.DiameterKM)
		}
		if got.NEO.PotentiallyHazardous != want.NEO.PotentiallyHazardous {
			p.errorf("record %d: potentially_hazardous mismatch", i)
		}
	}
	return p
}

// ── Phase 4: Serialization ──
// Validates the wire-level shape of the combined records.

func validateSerialization(combined []domain.CombinedRecord) *phase {
	p := &phase{name: "Phase 4: Serialization (wire shape)"}

	for i := range combined {
		rec := &combined[i]
		if _, err := time.Parse("2006-01-02 15:04", rec.DatetimeUTC); err != nil {
			p.errorf("record %d: datetime_utc %q is not in canonical form", i, rec.DatetimeUTC)
		}
		if rec.NEO.Designation == "" {
			p.errorf("record %d: nested neo missing designation", i)
		}
		if rec.ProcessedAt.IsZero() {
			p.errorf("record %d: processed_at is zero", i)
		}

		// Round-trip: marshaling must reproduce null for unknown numerics.
		data, err := json.Marshal(rec)
		if err != nil {
			p.errorf("record %d: marshal: %v", i, err)
			continue
		}
		var back domain.CombinedRecord
		if err := json.Unmarshal(data, &back); err != nil {
			p.errorf("record %d: unmarshal: %v", i, err)
			continue
		}
		if !optionalEq(back.NEO.DiameterKM, rec.NEO.DiameterKM) {
			p.errorf("record %d: diameter_km does not survive a round trip", i)
		}
	}
	return p
}

// ── Helpers ──

// optionalEq treats two unknown (NaN) values as equal.
func optionalEq(a, b domain.OptionalFloat) bool {
	if a.IsUnknown() && b.IsUnknown() {
		return true
	}
	return math.Abs(float64(a)-float64(b)) < 1e-9
}
