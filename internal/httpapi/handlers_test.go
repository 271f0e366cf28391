package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migmap/internal/atlas"
	"migmap/internal/metrics"
)

const fixtureDir = "../testdata/fixture"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	ds, err := atlas.Load(context.Background(), atlas.Sources{
		Geometry:   filepath.Join(fixtureDir, "geometry.geojson"),
		Migration:  filepath.Join(fixtureDir, "migration.json"),
		Crosswalk:  filepath.Join(fixtureDir, "crosswalk.csv"),
		Population: filepath.Join(fixtureDir, "population.json"),
	}, atlas.WithMetrics(metrics.New(reg)))
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(ds, reg))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestYears(t *testing.T) {
	srv := newTestServer(t)

	var out struct {
		Years           []int `json:"years"`
		EvolutionRanges []struct {
			Start int `json:"start"`
			End   int `json:"end"`
		} `json:"evolution_ranges"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/years", &out))
	assert.Equal(t, []int{1990, 2020}, out.Years)
	assert.Len(t, out.EvolutionRanges, 7)
}

func TestClassifyChoropleth(t *testing.T) {
	srv := newTestServer(t)

	var out atlas.Classification
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/classify/choropleth?year=2020", &out))
	assert.Len(t, out.Categories, 5)
	assert.Equal(t, 2, out.PerCountry["250"].Category)
	assert.True(t, out.PerCountry["076"].Flags.NoData)
}

func TestClassifyAnamorphic(t *testing.T) {
	srv := newTestServer(t)

	var out atlas.Classification
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/classify/anamorphic?mode=evolution&range=1990-2020", &out))
	assert.Equal(t, atlas.ModeEvolution, out.Mode)
	assert.True(t, out.PerCountry["276"].Flags.Polarity != "")

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"bad mode", "/api/classify/anamorphic?mode=volume&year=2020", http.StatusBadRequest},
		{"bad range", "/api/classify/anamorphic?range=1990-2001", http.StatusBadRequest},
		{"missing year", "/api/classify/anamorphic?mode=absolute", http.StatusBadRequest},
		{"non numeric year", "/api/classify/anamorphic?mode=absolute&year=abc", http.StatusBadRequest},
		{"absolute", "/api/classify/anamorphic?mode=absolute&year=2020", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]interface{}
			assert.Equal(t, tt.status, getJSON(t, srv, tt.path, &body))
			if tt.status != http.StatusOK {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestCountryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var c atlas.Country
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/countries/FRA", &c))
	assert.Equal(t, "250", c.Code)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv, "/api/countries/XYZ", nil))

	var partners atlas.PartnerReport
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/countries/250/partners?year=2020&limit=1", &partners))
	require.Len(t, partners.Partners, 1)
	assert.Equal(t, "Germany", partners.Partners[0].Name)
	assert.InDelta(t, 100.0, partners.Partners[0].Share, 1e-9, "share is relative to the returned partners")

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv, "/api/countries/250/partners?year=2020&direction=sideways", nil))

	var series atlas.TimeseriesReport
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/countries/250/timeseries?years=2020,1990", &series))
	require.Len(t, series.Points, 2)
	assert.Equal(t, 1990, series.Points[0].Year)

	var summary atlas.Summary
	assert.Equal(t, http.StatusOK, getJSON(t, srv, "/api/countries/250/summary?year=2020", &summary))
	require.NotNil(t, summary.Percentage)
	assert.InDelta(t, 7.5, summary.Percentage.Amount, 1e-9)
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	body := `{"year": 2020, "view": "anamorphic", "mode": "percentage", "country": "DEU"}`
	resp, err := http.Post(srv.URL+"/api/render", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap atlas.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "276", snap.State.Country)
	assert.Equal(t, atlas.ViewAnamorphic, snap.Map.View)
	assert.NotNil(t, snap.Partners)
	assert.NotNil(t, snap.Summary)

	resp, err = http.Post(srv.URL+"/api/render", "application/json", strings.NewReader(`{"view": "globe"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	getJSON(t, srv, "/api/classify/choropleth?year=2020", nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "classify_choropleth")
}
