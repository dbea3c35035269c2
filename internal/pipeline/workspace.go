package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// workspacePrefix names per-job directories under the base dir.
const workspacePrefix = "temp_"

// Workspaces allocates and tears down per-job working directories under a
// fixed base directory. Directory names derive from the job ID, so no two
// jobs ever share a workspace.
type Workspaces struct {
	baseDir string
}

// NewWorkspaces creates a manager rooted at baseDir.
func NewWorkspaces(baseDir string) *Workspaces {
	return &Workspaces{baseDir: baseDir}
}

// Create allocates the workspace directory for the given job ID and returns
// its absolute path.
func (w *Workspaces) Create(jobID string) (string, error) {
	dir := filepath.Join(w.baseDir, workspacePrefix+jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrResource, dir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrResource, dir, err)
	}
	return abs, nil
}

// Destroy removes the workspace tree. It is idempotent: an already-absent
// directory is not an error.
func (w *Workspaces) Destroy(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrResource, dir, err)
	}
	return nil
}
