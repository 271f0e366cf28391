package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog/log"

	"migmap/internal/countries"
)

// DefaultCodeProperty is the feature property holding the numeric country code.
const DefaultCodeProperty = "iso_n3"

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Properties map[string]Text `json:"properties"`
	} `json:"features"`
}

// ReadGeometry returns the distinct canonical codes of the features of a GeoJSON
// FeatureCollection. Only properties are read; coordinates are ignored.
func ReadGeometry(r io.Reader, codeProperty string) ([]string, Report, error) {
	rep := Report{Source: "geometry"}
	if codeProperty == "" {
		codeProperty = DefaultCodeProperty
	}

	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, rep, fmt.Errorf("geometry: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, rep, errors.New("geometry: expected a FeatureCollection")
	}

	seen := make(map[string]struct{})
	for i, f := range fc.Features {
		code, ok := countries.Normalize(f.Properties[codeProperty].String())
		if !ok {
			rep.Rejected++
			log.Debug().Int("feature", i).Str("property", codeProperty).Msg("Feature has no usable code")
			continue
		}
		if countries.IsAggregate(code) {
			rep.Skipped++
			continue
		}
		rep.Accepted++
		seen[code] = struct{}{}
	}

	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes, rep, nil
}

// LoadGeometry reads the GeoJSON file at path.
func LoadGeometry(path, codeProperty string) ([]string, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{Source: "geometry", Path: path}, fmt.Errorf("open geometry: %w", err)
	}
	defer f.Close()

	codes, rep, err := ReadGeometry(f, codeProperty)
	rep.Path = path
	if err == nil {
		rep.log()
	}
	return codes, rep, err
}
