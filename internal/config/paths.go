package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths centralizes the directory layout used by ingestion, export and
// logging. All accessors return absolute paths.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// NewPaths builds the path set rooted at baseDir, applying the configured
// directory names.
func NewPaths(baseDir string, cfg PathsConfig) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		baseDir = wd
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	return &Paths{
		BaseDir:    abs,
		DataDir:    resolveUnder(abs, cfg.DataDir),
		ReportsDir: resolveUnder(abs, cfg.ReportsDir),
		LogsDir:    resolveUnder(abs, cfg.LogsDir),
	}, nil
}

// EnsureDirs creates the data, reports and logs directories if missing.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDataPath returns the absolute path of a file under the data directory.
func (p *Paths) GetDataPath(name string) string {
	return filepath.Join(p.DataDir, name)
}

// GetReportPath returns the absolute path of a file under the reports directory.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// GetLogPath returns the absolute path of a file under the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

func resolveUnder(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
