package engine

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"migmap/internal/ingest"
)

// Output file names, matching the default source settings.
const (
	GeometryFile      = "world.geojson"
	MigrationFile     = "final_migration_data.json"
	CrosswalkFile     = "correspondances.csv"
	CrosswalkXLSXFile = "correspondances.xlsx"
	PopulationFile    = "population.json"
)

type GeneratorConfig struct {
	Scenario  string // "mild" or "chaos"
	Countries int
	Seed      uint64
	FirstYear int
	LastYear  int
	Step      int
}

// Country is one generated country.
type Country struct {
	Code       string
	AltCode    string
	Name       string
	Population int64 // in FirstYear
	Lon, Lat   float64
}

// Record is one migration row as found in the published dataset.
type Record struct {
	OriginCode      int    `json:"origin_code"`
	DestinationCode int    `json:"destination_code"`
	Year            int    `json:"year"`
	Migrants        string `json:"number_of_migrants"`
}

type Dataset struct {
	Countries  []Country
	Records    []Record
	Population []map[string]interface{}
}

var catalog = []Country{
	{"004", "AFG", "Afghanistan", 12_400_000, 67.7, 33.9},
	{"008", "ALB", "Albania", 3_300_000, 20.2, 41.2},
	{"012", "DZA", "Algeria", 25_500_000, 1.7, 28.0},
	{"032", "ARG", "Argentina", 32_600_000, -63.6, -38.4},
	{"036", "AUS", "Australia", 17_100_000, 133.8, -25.3},
	{"040", "AUT", "Austria", 7_700_000, 14.6, 47.5},
	{"050", "BGD", "Bangladesh", 103_200_000, 90.4, 23.7},
	{"056", "BEL", "Belgium", 10_000_000, 4.5, 50.5},
	{"076", "BRA", "Brazil", 149_000_000, -51.9, -14.2},
	{"124", "CAN", "Canada", 27_700_000, -106.3, 56.1},
	{"156", "CHN", "China", 1_135_000_000, 104.2, 35.9},
	{"250", "FRA", "France", 58_000_000, 2.2, 46.2},
	{"276", "DEU", "Germany", 79_400_000, 10.5, 51.2},
	{"356", "IND", "India", 870_000_000, 78.9, 20.6},
	{"380", "ITA", "Italy", 56_700_000, 12.6, 41.9},
	{"392", "JPN", "Japan", 123_600_000, 138.3, 36.2},
	{"484", "MEX", "Mexico", 83_900_000, -102.6, 23.6},
	{"504", "MAR", "Morocco", 24_800_000, -7.1, 31.8},
	{"566", "NGA", "Nigeria", 95_200_000, 8.7, 9.1},
	{"724", "ESP", "Spain", 38_900_000, -3.7, 40.5},
	{"826", "GBR", "United Kingdom", 57_200_000, -3.4, 55.4},
	{"840", "USA", "United States", 249_600_000, -95.7, 37.1},
}

// Generate builds a reproducible synthetic dataset. The chaos scenario adds the defects the
// loader has to cope with: malformed counts, a population gap that pushes a share above
// 100%, missing population years and a regional aggregate.
func Generate(cfg GeneratorConfig) Dataset {
	if cfg.Countries <= 0 || cfg.Countries > len(catalog) {
		cfg.Countries = len(catalog)
	}
	if cfg.Step <= 0 {
		cfg.Step = 5
	}
	if cfg.LastYear < cfg.FirstYear {
		cfg.LastYear = cfg.FirstYear
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	chaos := cfg.Scenario == "chaos"

	ds := Dataset{Countries: append([]Country(nil), catalog[:cfg.Countries]...)}

	// Pairwise attractiveness is fixed per pair so that flows evolve smoothly over time.
	type pair struct{ o, d int }
	weights := make(map[pair]float64)
	for o := range ds.Countries {
		for d := range ds.Countries {
			if o != d && rng.Float64() < 0.35 {
				weights[pair{o, d}] = weibullSample(rng, 1.2, 1.0)
			}
		}
	}

	for year := cfg.FirstYear; year <= cfg.LastYear; year += cfg.Step {
		growth := 1 + 0.04*float64(year-cfg.FirstYear)/float64(cfg.Step)
		for o := range ds.Countries {
			for d := range ds.Countries {
				w, ok := weights[pair{o, d}]
				if !ok {
					continue
				}
				dest := ds.Countries[d]
				migrants := int64(w * growth * float64(dest.Population) * 0.002)
				count := formatCount(migrants)
				if chaos && rng.Float64() < 0.03 {
					count = "n/a"
				}
				ds.Records = append(ds.Records, Record{
					OriginCode:      atoi(ds.Countries[o].Code),
					DestinationCode: atoi(dest.Code),
					Year:            year,
					Migrants:        count,
				})
			}
		}
	}

	for i, c := range ds.Countries {
		row := map[string]interface{}{"Country Name": c.Name}
		row[ingest.PopulationAltCodeKey] = c.AltCode
		for year := ingest.FirstPopulationYear; year <= ingest.LastPopulationYear; year++ {
			pop := float64(c.Population) * math.Pow(1.01, float64(year-cfg.FirstYear))
			switch {
			case chaos && i == 0:
				// A population gap makes the foreign-born share exceed 100%.
				pop = 1000
			case chaos && i == 1 && year%2 == 1:
				row[strconv.Itoa(year)] = ""
				continue
			}
			row[strconv.Itoa(year)] = int64(pop)
		}
		ds.Population = append(ds.Population, row)
	}

	if chaos {
		ds.Countries = append(ds.Countries, Country{Code: "900", AltCode: "WLD", Name: "World"})
	}

	return ds
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// formatCount renders a count with space-separated thousands, e.g. "1 250 000".
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func atoi(code string) int {
	n, _ := strconv.Atoi(code)
	return n
}

// Save writes the four source files to outDir. With xlsx the crosswalk is also written as
// a workbook.
func Save(outDir string, ds Dataset, xlsx bool) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	if err := writeJSON(filepath.Join(outDir, MigrationFile), ds.Records); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, PopulationFile), ds.Population); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(outDir, GeometryFile), geometry(ds.Countries)); err != nil {
		return err
	}
	if err := writeCrosswalkCSV(filepath.Join(outDir, CrosswalkFile), ds.Countries); err != nil {
		return err
	}
	if xlsx {
		return writeCrosswalkXLSX(filepath.Join(outDir, CrosswalkXLSXFile), ds.Countries)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func geometry(countries []Country) map[string]interface{} {
	features := make([]map[string]interface{}, 0, len(countries))
	for _, c := range countries {
		if c.Code == "900" {
			continue
		}
		features = append(features, map[string]interface{}{
			"type":       "Feature",
			"properties": map[string]interface{}{"name": c.Name, "iso_n3": c.Code},
			"geometry":   map[string]interface{}{"type": "Point", "coordinates": []float64{c.Lon, c.Lat}},
		})
	}
	return map[string]interface{}{"type": "FeatureCollection", "features": features}
}

func crosswalkRows(countries []Country) [][]string {
	rows := [][]string{{ingest.HeaderCode, ingest.HeaderAltCode, ingest.HeaderName}}
	for _, c := range countries {
		rows = append(rows, []string{c.Code, c.AltCode, c.Name})
	}
	return rows
}

func writeCrosswalkCSV(path string, countries []Country) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ingest.DefaultDelimiter
	if err := w.WriteAll(crosswalkRows(countries)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeCrosswalkXLSX(path string, countries []Country) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range crosswalkRows(countries) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
