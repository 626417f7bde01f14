// Package dotdir resolves the .knowledge/ directory that holds config.toml
// and, for the sqlite backend, the default database file.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the name of the knowledge directory.
const DirName = ".knowledge"

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .knowledge/ directory.
// Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.knowledge/ dir
//  3. Home ~/.knowledge/ dir
//
// The resolved directory is created if it doesn't exist.
func (m *Manager) Target(overrideDir string) (string, error) {
	var dir string

	switch {
	case overrideDir != "":
		dir = overrideDir

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = filepath.Join(cwd, DirName)

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, DirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating knowledge directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// localDirExists checks whether a .knowledge/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, DirName))
	return err == nil && info.IsDir()
}
