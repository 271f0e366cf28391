package ingest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"migmap/internal/countries"
	"migmap/internal/flows"
)

const fixtureDir = "../testdata/fixture"

func TestLoadMigration(t *testing.T) {
	records, rep, err := LoadMigration(filepath.Join(fixtureDir, "migration.json"))
	require.NoError(t, err)

	assert.Equal(t, 13, rep.Accepted)
	assert.Equal(t, 2, rep.Rejected)
	assert.Equal(t, 1, rep.Malformed)
	require.Len(t, records, 13)

	assert.Equal(t, flows.Record{Origin: "276", Destination: "250", Year: 1990, Migrants: 100_000}, records[0])
	assert.Equal(t, "004", records[4].Destination, "numeric codes are zero-padded")
	assert.Equal(t, int64(0), records[9].Migrants, "malformed counts read as 0")
	assert.Equal(t, 1985, records[12].Year, "lower-case year key is accepted")
}

func TestReadMigration_NotAnArray(t *testing.T) {
	_, _, err := ReadMigration(strings.NewReader(`{"origin_code": 1}`))
	assert.Error(t, err)
}

func TestReadMigration_TruncatedIsFatal(t *testing.T) {
	_, _, err := ReadMigration(strings.NewReader(`[{"origin_code": 250, "destination_code": 276, "year": 2000`))
	assert.Error(t, err)
}

func TestReadMigration_WrongElementTypeIsRejected(t *testing.T) {
	input := `[
		{"origin_code": 250, "destination_code": 276, "year": 2000, "number_of_migrants": "12"},
		{"origin_code": true, "destination_code": 276, "year": 2000, "number_of_migrants": "12"},
		42
	]`
	records, rep, err := ReadMigration(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, rep.Rejected)
}

func TestLoadCrosswalk_CSV(t *testing.T) {
	ids, rep, err := LoadCrosswalk(filepath.Join(fixtureDir, "crosswalk.csv"), 0)
	require.NoError(t, err)

	assert.Equal(t, 6, rep.Accepted)
	assert.Equal(t, 1, rep.Rejected)
	assert.Equal(t, 1, rep.Skipped)

	r := countries.NewResolver(ids)
	code, ok := r.Code("AFG")
	require.True(t, ok)
	assert.Equal(t, "004", code)
	assert.Equal(t, "Germany", r.NameOr("276", ""))
}

func TestReadCrosswalkCSV_MissingColumn(t *testing.T) {
	_, _, err := ReadCrosswalkCSV(strings.NewReader("M49 Code;Name\n250;France\n"), ';')
	assert.ErrorContains(t, err, HeaderAltCode)
}

func TestLoadCrosswalk_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crosswalk.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{HeaderCode, HeaderAltCode, HeaderName},
		{"250", "FRA", "France"},
		{"901", "XXX", "Aggregate"},
		{"724", "", "Spain"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ids, rep, err := LoadCrosswalk(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []countries.Identifier{{Code: "250", AltCode: "FRA", Name: "France"}}, ids)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 1, rep.Rejected)
}

func TestLoadPopulation(t *testing.T) {
	rows, rep, err := LoadPopulation(filepath.Join(fixtureDir, "population.json"))
	require.NoError(t, err)

	assert.Equal(t, 8, rep.Accepted)
	assert.Equal(t, 1, rep.Rejected)
	assert.Equal(t, 1, rep.Malformed)

	byAlt := make(map[string]map[int]int64)
	for _, r := range rows {
		byAlt[r.AltCode] = r.ByYear
	}
	assert.Equal(t, int64(4_000_000), byAlt["ESP"][2020], "string cells are parsed")
	assert.Empty(t, byAlt["BRA"], "blank and null cells are absent")
	assert.NotContains(t, byAlt["USA"], 2021)
}

func TestLoadGeometry(t *testing.T) {
	codes, rep, err := LoadGeometry(filepath.Join(fixtureDir, "geometry.geojson"), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"004", "076", "250", "276", "724", "840"}, codes)
	assert.Equal(t, 1, rep.Rejected)
}

func TestReadGeometry_NotACollection(t *testing.T) {
	_, _, err := ReadGeometry(strings.NewReader(`{"type": "Feature"}`), "")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, rep, err := LoadMigration(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
	assert.Equal(t, "migration", rep.Source)
}
