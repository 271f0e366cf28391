package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the rotating log file inside the log directory.
const FileName = "migmap.log"

// Init initializes the global logger with dual sinks: os.Stderr and a rotating file.
// Stdout is left untouched because it carries the MCP stdio stream.
func Init(verbose bool) error {
	// .env next to the binary may set LOGS_FOLDER; Init runs before config.Load.
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		_ = godotenv.Load(filepath.Join(exeDir, ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	logDir := ResolveDir(os.Getenv("LOGS_FOLDER"), os.Getenv("DATA_PATH"), exeDir)
	if err := ensureWritable(logDir); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)).
		With().
		Timestamp().
		Logger()
	return nil
}

// ResolveDir picks the log directory: LOGS_FOLDER, then <DATA_PATH>/logs, then
// <exe dir>/logs, then ./logs.
func ResolveDir(logsFolder, dataPath, exeDir string) string {
	switch {
	case logsFolder != "":
		return logsFolder
	case dataPath != "":
		return filepath.Join(dataPath, "logs")
	case exeDir != "":
		return filepath.Join(exeDir, "logs")
	}
	return "logs"
}

func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", dir, err)
	}
	probe := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return fmt.Errorf("log directory %q is not writable: %w", dir, err)
	}
	_ = os.Remove(probe)
	return nil
}
