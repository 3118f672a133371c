package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/psurana/pulse-etl/etl/utils"
)

// FindJSONFiles walks root recursively and returns the paths of every .json
// file, optionally filtered by a path substring. Unreadable subtrees are
// logged and skipped rather than aborting the walk. A missing root is a
// warning and yields an empty slice. Callers must not rely on result order.
func FindJSONFiles(root, pattern string, logger *utils.ETLLogger) []string {
	if _, err := os.Stat(root); err != nil {
		logger.Warn("Source path not found: %s", root)
		return nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		if pattern != "" && !strings.Contains(path, pattern) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		logger.Warn("Walk of %s ended early: %v", root, err)
	}

	return files
}

// StateDirectories lists the per-state subdirectories under a map dataset's
// state branch. Missing branch yields an empty slice.
func StateDirectories(stateBase string, logger *utils.ETLLogger) []string {
	entries, err := os.ReadDir(stateBase)
	if err != nil {
		logger.Warn("State branch not found: %s", stateBase)
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs
}
