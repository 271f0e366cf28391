package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"migmap/internal/countries"
)

// Crosswalk column headers.
const (
	HeaderCode    = "M49 Code"
	HeaderAltCode = "ISO-alpha3 Code"
	HeaderName    = "Country or Area"
)

// DefaultDelimiter separates crosswalk CSV columns.
const DefaultDelimiter = ';'

// CrosswalkRow is one country identifier row.
type CrosswalkRow struct {
	Code    string `json:"code" validate:"required,numeric"`
	AltCode string `json:"alt_code" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

// ReadCrosswalkCSV parses a delimited crosswalk with a header row.
func ReadCrosswalkCSV(r io.Reader, delim rune) ([]countries.Identifier, Report, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Report{Source: "crosswalk"}, fmt.Errorf("crosswalk: %w", err)
		}
		rows = append(rows, rec)
	}
	return crosswalkFromRows(rows)
}

// ReadCrosswalkXLSX parses the first sheet of a crosswalk workbook.
func ReadCrosswalkXLSX(path string) ([]countries.Identifier, Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Report{Source: "crosswalk"}, fmt.Errorf("open crosswalk workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, Report{Source: "crosswalk"}, errors.New("crosswalk workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, Report{Source: "crosswalk"}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return crosswalkFromRows(rows)
}

func crosswalkFromRows(rows [][]string) ([]countries.Identifier, Report, error) {
	rep := Report{Source: "crosswalk"}
	if len(rows) == 0 {
		return nil, rep, errors.New("crosswalk: missing header row")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cols[h] = i
	}
	for _, h := range []string{HeaderCode, HeaderAltCode, HeaderName} {
		if _, ok := cols[h]; !ok {
			return nil, rep, fmt.Errorf("crosswalk: missing column %q", h)
		}
	}

	cell := func(row []string, header string) string {
		i := cols[header]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var ids []countries.Identifier
	for n, row := range rows[1:] {
		cw := CrosswalkRow{
			Code:    cell(row, HeaderCode),
			AltCode: cell(row, HeaderAltCode),
			Name:    cell(row, HeaderName),
		}
		if err := validate.Struct(cw); err != nil {
			rep.Rejected++
			log.Debug().Err(err).Int("row", n+2).Msg("Rejected crosswalk row")
			continue
		}
		if countries.IsAggregate(cw.Code) {
			rep.Skipped++
			continue
		}
		rep.Accepted++
		ids = append(ids, countries.Identifier{Code: cw.Code, AltCode: cw.AltCode, Name: cw.Name})
	}
	return ids, rep, nil
}

// LoadCrosswalk reads a crosswalk from a CSV file, or from an .xlsx workbook.
func LoadCrosswalk(path string, delim rune) ([]countries.Identifier, Report, error) {
	var (
		ids []countries.Identifier
		rep Report
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		ids, rep, err = ReadCrosswalkXLSX(path)
	} else {
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, Report{Source: "crosswalk", Path: path}, fmt.Errorf("open crosswalk: %w", err)
		}
		defer f.Close()
		if delim == 0 {
			delim = DefaultDelimiter
		}
		ids, rep, err = ReadCrosswalkCSV(f, delim)
	}
	rep.Path = path
	if err == nil {
		rep.log()
	}
	return ids, rep, err
}
