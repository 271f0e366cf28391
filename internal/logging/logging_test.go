package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDir(t *testing.T) {
	tests := []struct {
		name                         string
		logsFolder, dataPath, exeDir string
		want                         string
	}{
		{"explicit folder wins", "/var/log/migmap", "/data", "/opt/migmap", "/var/log/migmap"},
		{"data path", "", "/data", "/opt/migmap", filepath.Join("/data", "logs")},
		{"binary directory", "", "", "/opt/migmap", filepath.Join("/opt/migmap", "logs")},
		{"working directory", "", "", "", "logs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDir(tt.logsFolder, tt.dataPath, tt.exeDir); got != tt.want {
				t.Errorf("ResolveDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	if err := ensureWritable(dir); err != nil {
		t.Fatalf("ensureWritable() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Errorf("probe file was not removed")
	}
}
