package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"migmap/internal/atlas"
	"migmap/internal/classify"
	"migmap/internal/ingest"
)

// SourceConfig names the four input files. Relative paths are resolved against DataPath.
type SourceConfig struct {
	Geometry             string `envconfig:"GEOMETRY" default:"world.geojson" validate:"required"`
	Migration            string `envconfig:"MIGRATION" default:"final_migration_data.json" validate:"required"`
	Crosswalk            string `envconfig:"CROSSWALK" default:"correspondances.csv" validate:"required"`
	Population           string `envconfig:"POPULATION" default:"population.json" validate:"required"`
	CrosswalkDelimiter   string `envconfig:"CROSSWALK_DELIMITER" default:";" validate:"len=1"`
	GeometryCodeProperty string `envconfig:"GEOMETRY_CODE_PROPERTY" default:"iso_n3" validate:"required"`
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath              string        `envconfig:"DATA_PATH"`
	LogDir                string        `envconfig:"LOGS_FOLDER"`
	Source                SourceConfig  `envconfig:"SOURCE"`
	HTTPAddr              string        `envconfig:"HTTP_ADDR" default:"127.0.0.1:8080" validate:"required"`
	HTTPReadHeaderTimeout time.Duration `envconfig:"HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	EnableMermaidCharts   bool          `envconfig:"ENABLE_MERMAID_CHARTS" default:"false"`
	StyleFile             string        `envconfig:"STYLE_FILE"`

	Theme classify.Theme `ignored:"true"`
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return fromEnv(exeDir)
}

// fromEnv fills the configuration from the process environment. exeDir is the default
// data path.
func fromEnv(exeDir string) (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// 3. Resolve Data Paths
	if cfg.DataPath == "" {
		if exeDir != "" {
			cfg.DataPath = exeDir
		} else {
			cfg.DataPath = "."
		}
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.DataPath, "logs")
	}
	cfg.Source.Geometry = cfg.resolve(cfg.Source.Geometry)
	cfg.Source.Migration = cfg.resolve(cfg.Source.Migration)
	cfg.Source.Crosswalk = cfg.resolve(cfg.Source.Crosswalk)
	cfg.Source.Population = cfg.resolve(cfg.Source.Population)

	// 4. Style
	cfg.Theme = classify.DefaultTheme()
	if cfg.StyleFile != "" {
		theme, err := LoadStyle(cfg.resolve(cfg.StyleFile))
		if err != nil {
			return nil, err
		}
		cfg.Theme = theme
	}

	if err := ingest.NewValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *AppConfig) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataPath, path)
}

// Sources converts the source settings into dataset load arguments.
func (c *AppConfig) Sources() atlas.Sources {
	delim, _ := utf8.DecodeRuneInString(c.Source.CrosswalkDelimiter)
	return atlas.Sources{
		Geometry:             c.Source.Geometry,
		Migration:            c.Source.Migration,
		Crosswalk:            c.Source.Crosswalk,
		Population:           c.Source.Population,
		CrosswalkDelimiter:   delim,
		GeometryCodeProperty: c.Source.GeometryCodeProperty,
	}
}
