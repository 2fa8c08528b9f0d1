package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths is the resolved, absolute view of PathsConfig.
type Paths struct {
	BaseDir      string
	DataDir      string
	LogsDir      string
	SourceFile   string
	Sheet        string
	ArtifactFile string
}

// ResolvePaths makes every configured path absolute. Relative entries are
// joined onto BaseDir, which itself defaults to the working directory.
func (c *Config) ResolvePaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base dir: %w", err)
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		BaseDir:      base,
		DataDir:      resolve(c.Paths.DataDir),
		LogsDir:      resolve(c.Paths.LogsDir),
		SourceFile:   resolve(c.Paths.SourceFile),
		Sheet:        c.Paths.Sheet,
		ArtifactFile: resolve(c.Paths.ArtifactFile),
	}, nil
}

// EnsureDirectories creates the data directory and the artifact's parent
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, filepath.Dir(p.ArtifactFile)}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("source_file", p.SourceFile),
		slog.String("sheet", p.Sheet),
		slog.String("artifact_file", p.ArtifactFile))
}
