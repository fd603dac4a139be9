// Command genmock writes deterministic feed fixtures and the combined JSON
// output the pipeline would produce from them. It runs the actual extract and
// catalog packages so the fixtures stay in lockstep with pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -neo-out data/mock/neos.csv \
//	  -cad-out data/mock/cad.json \
//	  -combined-out data/mock/combined.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/couchcryptid/neo-data-etl/internal/extract"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
	"github.com/couchcryptid/neo-data-etl/internal/report"
)

// neoCSV is the object feed fixture. It deliberately includes an unnamed
// object, an object with unknown diameter, an empty pha flag, and a row with
// a non-numeric diameter that extraction must skip.
const neoCSV = `pdes,name,diameter,pha
433,Eros,16.84,N
1566,Icarus,1.0,Y
2101,Adonis,0.6,Y
2102,Tantalus,,Y
2340,Hathor,0.3,
1862,Apollo,1.5,Y
2062,Aten,1.1,Y
3200,Phaethon,bogus,Y
`

// cadJSON is the approach feed fixture. Row order is the feed's order; it
// includes an approach for an object absent from the CSV (2019 XY), a row
// with an unreadable distance that extraction must skip, and a second
// approach for 433 so per-object grouping is observable.
const cadJSON = `{
  "fields": ["des", "orbit_id", "jd", "cd", "dist", "dist_min", "dist_max", "v_rel", "v_inf", "t_sigma_f", "h"],
  "data": [
    ["433", "659", "2415701.5", "1900-Dec-27 01:30", "0.314", "0.313", "0.315", "5.58", "5.58", "00:02", "19.1"],
    ["433", "659", "2453371.5", "2005-Jan-01 10:17", "0.467", "0.467", "0.467", "5.42", "5.42", "00:01", "19.1"],
    ["1566", "37", "2459000.5", "2020-May-31 00:00", "0.042", "0.042", "0.043", "28.1", "28.0", "00:05", "16.3"],
    ["2101", "40", "2451544.5", "2000-Jan-01 12:00", "0.035", "0.034", "0.036", "10.2", "10.1", "00:03", "18.8"],
    ["2019 XY", "2", "2458850.5", "2020-Jan-02 06:45", "0.021", "0.020", "0.022", "12.9", "12.8", "00:09", "24.5"],
    ["2340", "98", "2456293.5", "2013-Jan-01 00:00", "n/a", "", "", "6.74", "6.73", "00:04", "19.2"],
    ["1862", "112", "2460676.5", "2025-Jan-01 18:30", "0.088", "0.088", "0.088", "", "", "00:02", "16.25"]
  ]
}`

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	neoOut := flag.String("neo-out", "", "output path for the object CSV fixture")
	cadOut := flag.String("cad-out", "", "output path for the approach JSON fixture")
	combinedOut := flag.String("combined-out", "", "output path for the combined JSON fixture")
	flag.Parse()

	if *neoOut == "" || *cadOut == "" || *combinedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -neo-out, -cad-out, -combined-out")
	}

	// Fix the clock so processed_at stamps are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	if err := writeFile(*neoOut, []byte(neoCSV)); err != nil {
		return fmt.Errorf("writing object fixture: %w", err)
	}
	log.Printf("wrote object fixture: %s", *neoOut)

	if err := writeFile(*cadOut, []byte(cadJSON)); err != nil {
		return fmt.Errorf("writing approach fixture: %w", err)
	}
	log.Printf("wrote approach fixture: %s", *cadOut)

	// Run the real extraction and linkage over the fixtures just written.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor := extract.New(logger, observability.NewMetricsForTesting())

	neos, err := extractor.ExtractObjects(strings.NewReader(neoCSV))
	if err != nil {
		return fmt.Errorf("extract objects: %w", err)
	}
	approaches, err := extractor.ExtractApproaches(strings.NewReader(cadJSON))
	if err != nil {
		return fmt.Errorf("extract approaches: %w", err)
	}
	cat := catalog.New(neos, approaches)

	var linked []*domain.CloseApproach
	for _, ca := range cat.Approaches() {
		if ca.NEO() != nil {
			linked = append(linked, ca)
		}
	}

	var buf strings.Builder
	if err := report.WriteJSON(&buf, linked); err != nil {
		return fmt.Errorf("render combined fixture: %w", err)
	}
	if err := writeFile(*combinedOut, []byte(buf.String())); err != nil {
		return fmt.Errorf("writing combined fixture: %w", err)
	}
	log.Printf("wrote combined fixture: %s", *combinedOut)

	printStats(cat)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// printStats prints the counts the test suites assert against.
func printStats(cat *catalog.Catalog) {
	stats := cat.Stats()

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Objects: %d\n", len(cat.Objects()))
	fmt.Printf("Approaches: %d\n", len(cat.Approaches()))
	fmt.Printf("Linked: %d, unlinked: %d, duplicate designations: %d\n",
		stats.Linked, stats.Unlinked, stats.DuplicateDesignations)

	var named, hazardous, unknownDiameter int
	for _, neo := range cat.Objects() {
		if neo.Name != "" {
			named++
		}
		if neo.Hazardous {
			hazardous++
		}
		if rec := neo.Serialize(); rec.DiameterKM.IsUnknown() {
			unknownDiameter++
		}
	}
	fmt.Printf("Named: %d, hazardous: %d, unknown diameter: %d\n",
		named, hazardous, unknownDiameter)

	for _, neo := range cat.Objects() {
		if n := len(neo.Approaches()); n > 0 {
			fmt.Printf("  %s: %d approach(es)\n", neo.Fullname(), n)
		}
	}

	data, err := json.Marshal(cat.Objects()[0].Serialize())
	if err == nil {
		fmt.Printf("First object serialized: %s\n", data)
	}
}
