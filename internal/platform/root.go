package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/jot/pkg/adapters/fs"
)

// ErrRootNotFound is returned by FindRoot when no notes folder is found.
var ErrRootNotFound = errors.New("root not found")

// FindRoot walks up from startDir looking for a notes folder, marked by a
// systemDir directory (".jot" when empty). It returns the absolute path of
// the folder holding the marker.
func FindRoot(startDir, systemDir string) (string, error) {
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, systemDir)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}
