package atlas

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"migmap/internal/countries"
	"migmap/internal/flows"
	"migmap/internal/ingest"
	"migmap/internal/population"
)

// Sources locates the four load-time inputs.
type Sources struct {
	Geometry             string
	Migration            string
	Crosswalk            string
	Population           string
	CrosswalkDelimiter   rune
	GeometryCodeProperty string
}

// Load reads the four sources in parallel and builds the Dataset. Any failure is fatal:
// there is no partial dataset.
func Load(ctx context.Context, src Sources, opts ...Option) (*Dataset, error) {
	var (
		ids      []countries.Identifier
		pop      []population.Row
		records  []flows.Record
		geometry []string
		reports  [4]ingest.Report
	)

	probe := &Dataset{}
	for _, opt := range opts {
		opt(probe)
	}
	m := probe.metrics

	g, ctx := errgroup.WithContext(ctx)
	run := func(name string, fn func() (ingest.Report, error)) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			rep, err := fn()
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			m.ObserveLoad(name, time.Since(start))
			m.SetIngested(name, rep.Accepted, rep.Rejected, rep.Skipped, rep.Malformed)
			return nil
		})
	}

	run("geometry", func() (rep ingest.Report, err error) {
		geometry, rep, err = ingest.LoadGeometry(src.Geometry, src.GeometryCodeProperty)
		reports[0] = rep
		return rep, err
	})
	run("migration", func() (rep ingest.Report, err error) {
		records, rep, err = ingest.LoadMigration(src.Migration)
		reports[1] = rep
		return rep, err
	})
	run("crosswalk", func() (rep ingest.Report, err error) {
		ids, rep, err = ingest.LoadCrosswalk(src.Crosswalk, src.CrosswalkDelimiter)
		reports[2] = rep
		return rep, err
	})
	run("population", func() (rep ingest.Report, err error) {
		pop, rep, err = ingest.LoadPopulation(src.Population)
		reports[3] = rep
		return rep, err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts = append(opts, WithReports(reports[:]...))
	d := New(ids, pop, records, geometry, opts...)

	log.Info().
		Int("countries", d.resolver.Len()).
		Int("records", d.flows.Len()).
		Ints("years", d.Years()).
		Msg("Dataset loaded")

	return d, nil
}
