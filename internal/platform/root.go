package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/silt/pkg/adapters/fs"
)

// FindRoot recursively looks upwards for a store root indicator.
// Indicators are: a .silt directory or a contexts directory.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, fs.DefaultSystemDir) || hasFile(dir, "contexts") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("store root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
