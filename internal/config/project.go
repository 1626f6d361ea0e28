package config

import (
	"os"
	"path/filepath"
)

// ProjectFile is the name of a per-project config file.
const ProjectFile = ".mention.yaml"

// FindProjectConfig walks up from startDir looking for ProjectFile and
// returns its path, or "" when no directory up to the root has one.
func FindProjectConfig(startDir string) (string, error) {
	current := startDir
	if current == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		current = cwd
	}
	current, err := filepath.Abs(current)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, ProjectFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// resolvePaths makes relative file paths in cfg relative to the directory of
// the config file they were read from.
func resolvePaths(cfg *Config, dir string) {
	abs := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	for i := range cfg.Directory.Sources {
		if cfg.Directory.Sources[i].Kind != KindHTTP {
			cfg.Directory.Sources[i].Path = abs(cfg.Directory.Sources[i].Path)
		}
	}
	cfg.Log.File = abs(cfg.Log.File)
}
