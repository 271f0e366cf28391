package main

import (
	"flag"
	"fmt"
	"os"

	"migmap/cmd/mockgen/engine"
	"migmap/internal/stats"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos")
	outDir := flag.String("out", "./data", "Output directory for the generated source files")
	countries := flag.Int("countries", 0, "Number of countries to generate (0 for all)")
	seed := flag.Uint64("seed", 1, "Random seed")
	xlsx := flag.Bool("xlsx", false, "Also write the crosswalk as an .xlsx workbook")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:  *scenario,
		Countries: *countries,
		Seed:      *seed,
		FirstYear: stats.FirstCheckpoint,
		LastYear:  stats.LastCheckpoint,
		Step:      5,
	}

	fmt.Printf("Generating scenario '%s' (Seed: %d) to %s...\n", cfg.Scenario, cfg.Seed, *outDir)

	ds := engine.Generate(cfg)

	if err := engine.Save(*outDir, ds, *xlsx); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %d countries, %d migration records.\n", len(ds.Countries), len(ds.Records))
}
