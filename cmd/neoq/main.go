// neoq is a command-line explorer for the extracted NEO catalog. It loads
// both feeds, links them, and answers inspect and query requests without
// needing the service or Kafka.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/couchcryptid/neo-data-etl/internal/catalog"
	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/couchcryptid/neo-data-etl/internal/extract"
	"github.com/couchcryptid/neo-data-etl/internal/observability"
	"github.com/couchcryptid/neo-data-etl/internal/report"
)

func main() {
	feedFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "neofile",
			Usage:   "Path to the object CSV feed",
			Value:   "data/neos.csv",
			Sources: cli.EnvVars("NEO_CSV_PATH"),
		},
		&cli.StringFlag{
			Name:    "cadfile",
			Usage:   "Path to the close-approach JSON feed",
			Value:   "data/cad.json",
			Sources: cli.EnvVars("CAD_JSON_PATH"),
		},
	}

	cmd := &cli.Command{
		Name:  "neoq",
		Usage: "Inspect and query near-Earth objects and their close approaches",
		Commands: []*cli.Command{
			{
				Name:   "inspect",
				Usage:  "Show one object, looked up by designation or by name",
				Action: runInspect,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "pdes", Usage: "Primary designation to look up"},
					&cli.StringFlag{Name: "name", Usage: "IAU name to look up"},
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "List the object's close approaches"},
				}, feedFlags...),
			},
			{
				Name:   "query",
				Usage:  "List close approaches matching the given filters",
				Action: runQuery,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "Match approaches on this UTC date (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "start-date", Usage: "Match approaches on or after this date"},
					&cli.StringFlag{Name: "end-date", Usage: "Match approaches on or before this date"},
					&cli.FloatFlag{Name: "min-distance", Usage: "Minimum approach distance in au"},
					&cli.FloatFlag{Name: "max-distance", Usage: "Maximum approach distance in au"},
					&cli.FloatFlag{Name: "min-velocity", Usage: "Minimum relative velocity in km/s"},
					&cli.FloatFlag{Name: "max-velocity", Usage: "Maximum relative velocity in km/s"},
					&cli.FloatFlag{Name: "min-diameter", Usage: "Minimum object diameter in km"},
					&cli.FloatFlag{Name: "max-diameter", Usage: "Maximum object diameter in km"},
					&cli.BoolFlag{Name: "hazardous", Usage: "Only potentially hazardous objects"},
					&cli.BoolFlag{Name: "not-hazardous", Usage: "Only non-hazardous objects"},
					&cli.IntFlag{Name: "limit", Usage: "Print at most this many results", Value: 10},
					&cli.StringFlag{Name: "outfile", Aliases: []string{"o"}, Usage: "Write results to a .csv or .json file instead of stdout"},
				}, feedFlags...),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("neoq error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadCatalog extracts both feeds and links them. Per-record diagnostics go
// to stderr; the catalog itself is the return value.
func loadCatalog(cmd *cli.Command) (*catalog.Catalog, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	extractor := extract.New(logger, observability.NewMetrics())

	neos, err := extractor.LoadObjects(cmd.String("neofile"))
	if err != nil {
		return nil, err
	}
	approaches, err := extractor.LoadApproaches(cmd.String("cadfile"))
	if err != nil {
		return nil, err
	}
	return catalog.New(neos, approaches), nil
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	pdes := cmd.String("pdes")
	name := cmd.String("name")
	if (pdes == "") == (name == "") {
		return fmt.Errorf("exactly one of --pdes or --name is required")
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	neo := cat.ByDesignation(pdes)
	if pdes == "" {
		neo = cat.ByName(name)
	}
	if neo == nil {
		return fmt.Errorf("no matching object found")
	}

	fmt.Println(neo)
	if cmd.Bool("verbose") {
		for _, ca := range neo.Approaches() {
			fmt.Printf("- %v\n", ca)
		}
	}
	return nil
}

func runQuery(_ context.Context, cmd *cli.Command) error {
	f, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	results := cat.Query(f)

	if outfile := cmd.String("outfile"); outfile != "" {
		return writeResults(outfile, results)
	}

	limit := int(cmd.Int("limit"))
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for _, ca := range results {
		fmt.Println(ca)
	}
	return nil
}

func filterFromFlags(cmd *cli.Command) (catalog.Filter, error) {
	var f catalog.Filter

	var err error
	if f.Date, err = dateFlag(cmd, "date"); err != nil {
		return f, err
	}
	if f.StartDate, err = dateFlag(cmd, "start-date"); err != nil {
		return f, err
	}
	if f.EndDate, err = dateFlag(cmd, "end-date"); err != nil {
		return f, err
	}

	f.MinDistance = floatFlag(cmd, "min-distance")
	f.MaxDistance = floatFlag(cmd, "max-distance")
	f.MinVelocity = floatFlag(cmd, "min-velocity")
	f.MaxVelocity = floatFlag(cmd, "max-velocity")
	f.MinDiameter = floatFlag(cmd, "min-diameter")
	f.MaxDiameter = floatFlag(cmd, "max-diameter")

	if cmd.Bool("hazardous") && cmd.Bool("not-hazardous") {
		return f, fmt.Errorf("--hazardous and --not-hazardous are mutually exclusive")
	}
	if cmd.Bool("hazardous") {
		v := true
		f.Hazardous = &v
	}
	if cmd.Bool("not-hazardous") {
		v := false
		f.Hazardous = &v
	}
	return f, nil
}

func dateFlag(cmd *cli.Command, name string) (*time.Time, error) {
	raw := cmd.String(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

func floatFlag(cmd *cli.Command, name string) *float64 {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.Float(name)
	return &v
}

func writeResults(outfile string, results []*domain.CloseApproach) error {
	f, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer f.Close()

	var werr error
	switch {
	case strings.HasSuffix(outfile, ".csv"):
		werr = report.WriteCSV(f, results)
	case strings.HasSuffix(outfile, ".json"):
		werr = report.WriteJSON(f, results)
	default:
		werr = fmt.Errorf("unsupported outfile %q: use a .csv or .json extension", outfile)
	}
	if werr != nil {
		return werr
	}
	_, _ = fmt.Fprintf(os.Stderr, "wrote %d results to %s\n", len(results), outfile)
	return nil
}
