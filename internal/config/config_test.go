package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migmap/internal/classify"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `STYLE_FILE='style with "double quotes".yaml'`
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, `style with "double quotes".yaml`, env["STYLE_FILE"])
}

func TestFromEnv_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)

	cfg, err := fromEnv("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataPath)
	assert.Equal(t, filepath.Join(dir, "logs"), cfg.LogDir)
	assert.Equal(t, filepath.Join(dir, "world.geojson"), cfg.Source.Geometry)
	assert.Equal(t, filepath.Join(dir, "correspondances.csv"), cfg.Source.Crosswalk)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTPReadHeaderTimeout)
	assert.False(t, cfg.EnableMermaidCharts)
	assert.Equal(t, classify.DefaultTheme(), cfg.Theme)

	src := cfg.Sources()
	assert.Equal(t, ';', src.CrosswalkDelimiter)
	assert.Equal(t, "iso_n3", src.GeometryCodeProperty)
}

func TestFromEnv_Overrides(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "pop.json")
	t.Setenv("DATA_PATH", dir)
	t.Setenv("SOURCE_POPULATION", abs)
	t.Setenv("SOURCE_CROSSWALK", "countries.xlsx")
	t.Setenv("SOURCE_CROSSWALK_DELIMITER", ",")
	t.Setenv("ENABLE_MERMAID_CHARTS", "true")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := fromEnv("")
	require.NoError(t, err)

	assert.Equal(t, abs, cfg.Source.Population, "absolute paths are kept")
	assert.Equal(t, filepath.Join(dir, "countries.xlsx"), cfg.Source.Crosswalk)
	assert.Equal(t, ',', cfg.Sources().CrosswalkDelimiter)
	assert.True(t, cfg.EnableMermaidCharts)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestFromEnv_ExeDirFallback(t *testing.T) {
	t.Setenv("DATA_PATH", "")

	cfg, err := fromEnv("/opt/migmap")
	require.NoError(t, err)
	assert.Equal(t, "/opt/migmap", cfg.DataPath)
}

func TestFromEnv_InvalidDelimiter(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("SOURCE_CROSSWALK_DELIMITER", ";;")

	_, err := fromEnv("")
	assert.Error(t, err)
}

func TestFromEnv_StyleFile(t *testing.T) {
	dir := t.TempDir()
	style := "size_min: 5\nsize_max: 40\nzero: \"#eeeeee\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.yaml"), []byte(style), 0o644))
	t.Setenv("DATA_PATH", dir)
	t.Setenv("STYLE_FILE", "style.yaml")

	cfg, err := fromEnv("")
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Theme.SizeMin)
	assert.Equal(t, 40.0, cfg.Theme.SizeMax)
	assert.Equal(t, "#eeeeee", cfg.Theme.Zero)
	assert.Equal(t, classify.Blues, cfg.Theme.Sequential)
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty keeps defaults", "", false},
		{"palette override", "sequential: [\"#000000\", \"#111111\", \"#222222\", \"#333333\", \"#444444\"]\n", false},
		{"short palette", "sequential: [\"#000000\"]\n", true},
		{"bad color", "indeterminate: grey\n", true},
		{"reversed sizes", "size_min: 50\nsize_max: 10\n", true},
		{"unknown key", "colour: \"#ffffff\"\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStyle([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadStyle_MissingFile(t *testing.T) {
	_, err := LoadStyle(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
