package ingest

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"migmap/internal/countries"
	"migmap/internal/flows"
)

// MigrationRow is one element of the migration records file.
type MigrationRow struct {
	OriginCode      Text `json:"origin_code" validate:"required,numeric"`
	DestinationCode Text `json:"destination_code" validate:"required,numeric"`
	// Matched case-insensitively, so both "year" and "Year" are accepted.
	Year     Text `json:"year" validate:"required,numeric"`
	Migrants Text `json:"number_of_migrants"`
}

// Record converts a validated row. countOK is false when the migrant count was malformed
// and read as 0.
func (m MigrationRow) Record() (rec flows.Record, countOK bool, err error) {
	origin, ok := countries.Normalize(m.OriginCode.String())
	if !ok {
		return rec, false, fmt.Errorf("origin_code %q is not a numeric code", m.OriginCode)
	}
	dest, ok := countries.Normalize(m.DestinationCode.String())
	if !ok {
		return rec, false, fmt.Errorf("destination_code %q is not a numeric code", m.DestinationCode)
	}
	year, err := strconv.Atoi(m.Year.String())
	if err != nil {
		return rec, false, fmt.Errorf("year %q: %w", m.Year, err)
	}

	migrants, countOK := flows.ParseCount(m.Migrants.String())
	return flows.Record{
		Origin:      origin,
		Destination: dest,
		Year:        year,
		Migrants:    migrants,
	}, countOK, nil
}

// ReadMigration decodes and validates a JSON array of migration rows.
func ReadMigration(r io.Reader) ([]flows.Record, Report, error) {
	rep := Report{Source: "migration"}
	var records []flows.Record

	err := decodeArray(r, func(i int, row MigrationRow, err error) {
		if err == nil {
			err = validate.Struct(row)
		}
		var rec flows.Record
		var countOK bool
		if err == nil {
			rec, countOK, err = row.Record()
		}
		if err != nil {
			rep.Rejected++
			log.Debug().Err(err).Int("row", i).Msg("Rejected migration row")
			return
		}
		if !countOK {
			rep.Malformed++
		}
		rep.Accepted++
		records = append(records, rec)
	})
	if err != nil {
		return nil, rep, fmt.Errorf("migration records: %w", err)
	}
	return records, rep, nil
}

// LoadMigration reads the migration records file at path.
func LoadMigration(path string) ([]flows.Record, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{Source: "migration", Path: path}, fmt.Errorf("open migration records: %w", err)
	}
	defer f.Close()

	records, rep, err := ReadMigration(f)
	rep.Path = path
	if err == nil {
		rep.log()
	}
	return records, rep, err
}
