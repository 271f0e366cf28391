package ingest

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"migmap/internal/population"
)

// Population year columns.
const (
	FirstPopulationYear = 1960
	LastPopulationYear  = 2023
)

// PopulationAltCodeKey is the column holding the alternate code.
const PopulationAltCodeKey = "Country Code"

// PopulationRow is the validated identity part of a population element.
type PopulationRow struct {
	AltCode string `json:"alt_code" validate:"required"`
}

// parsePopulation reads a population cell. Blank cells are 0 and not malformed.
func parsePopulation(raw Text) (int64, bool) {
	s := strings.TrimSpace(raw.String())
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	return int64(math.Round(f)), true
}

// ReadPopulation decodes a JSON array of per-country population objects keyed by year.
func ReadPopulation(r io.Reader) ([]population.Row, Report, error) {
	rep := Report{Source: "population"}
	var rows []population.Row

	err := decodeArray(r, func(i int, obj map[string]Text, err error) {
		if err == nil {
			err = validate.Struct(PopulationRow{AltCode: obj[PopulationAltCodeKey].String()})
		}
		if err != nil {
			rep.Rejected++
			log.Debug().Err(err).Int("row", i).Msg("Rejected population row")
			return
		}

		row := population.Row{
			AltCode: obj[PopulationAltCodeKey].String(),
			ByYear:  make(map[int]int64),
		}
		for y := FirstPopulationYear; y <= LastPopulationYear; y++ {
			raw, ok := obj[strconv.Itoa(y)]
			if !ok {
				continue
			}
			n, ok := parsePopulation(raw)
			if !ok {
				rep.Malformed++
			}
			if n > 0 {
				row.ByYear[y] = n
			}
		}
		rep.Accepted++
		rows = append(rows, row)
	})
	if err != nil {
		return nil, rep, fmt.Errorf("population: %w", err)
	}
	return rows, rep, nil
}

// LoadPopulation reads the population file at path.
func LoadPopulation(path string) ([]population.Row, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{Source: "population", Path: path}, fmt.Errorf("open population: %w", err)
	}
	defer f.Close()

	rows, rep, err := ReadPopulation(f)
	rep.Path = path
	if err == nil {
		rep.log()
	}
	return rows, rep, err
}
