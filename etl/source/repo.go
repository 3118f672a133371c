package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/psurana/pulse-etl/etl/utils"
)

// SyncRepository clones the pulse data repository under <dataDir>/raw/pulse,
// or pulls the latest changes when a clone already exists. It returns the
// path of the repository's data tree, which is the root the extractors read.
func SyncRepository(repoURL, dataDir string, logger *utils.ETLLogger) (string, error) {
	rawDir := filepath.Join(dataDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return "", fmt.Errorf("creating raw data directory: %w", err)
	}

	repoDir := filepath.Join(rawDir, "pulse")

	if _, err := os.Stat(filepath.Join(repoDir, ".git")); err == nil {
		logger.Info("Repository already exists at %s, pulling latest changes", repoDir)

		repo, err := git.PlainOpen(repoDir)
		if err != nil {
			return "", fmt.Errorf("opening repository: %w", err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return "", fmt.Errorf("getting worktree: %w", err)
		}
		err = worktree.Pull(&git.PullOptions{RemoteName: "origin"})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return "", fmt.Errorf("pulling repository: %w", err)
		}
		logger.Info("Repository updated")
	} else {
		logger.Info("Cloning repository %s into %s", repoURL, repoDir)

		_, err := git.PlainClone(repoDir, false, &git.CloneOptions{
			URL:   repoURL,
			Depth: 1,
		})
		if err != nil {
			return "", fmt.Errorf("cloning repository: %w", err)
		}
		logger.Info("Repository cloned")
	}

	return filepath.Join(repoDir, "data"), nil
}

// DataTreePath returns where the pulse data tree is expected when syncing is
// skipped and an existing checkout is used.
func DataTreePath(dataDir string) string {
	return filepath.Join(dataDir, "raw", "pulse", "data")
}
