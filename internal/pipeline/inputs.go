package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Swayam-a/agrovision-backend/internal/model"
	"github.com/Swayam-a/agrovision-backend/internal/storage"
)

// Conventional fixture file names for local-mode jobs.
const (
	FixtureRGB = "test_rgb.jpg"
	FixtureNIR = "test_nir.jpg"
)

// Workspace file names for remotely fetched inputs.
const (
	remoteRGBName = "input_rgb.png"
	remoteNIRName = "input_nir.png"
)

// InputAcquirer materializes both source images for a job and returns their
// absolute paths. Both images must be present before the computation runs;
// acquiring one without the other is a failure for the whole job.
type InputAcquirer interface {
	Acquire(ctx context.Context, job *model.Job) (rgbPath, nirPath string, err error)
}

// FixtureInputs resolves the conventional test files in a local fixture
// directory. Nothing is copied; the fixtures are read in place and never
// modified.
type FixtureInputs struct {
	Dir string
}

// Acquire checks both fixture files exist and returns their absolute paths.
func (f FixtureInputs) Acquire(_ context.Context, _ *model.Job) (string, string, error) {
	rgb, err := filepath.Abs(filepath.Join(f.Dir, FixtureRGB))
	if err != nil {
		return "", "", fmt.Errorf("%w: resolve fixture dir %s: %v", ErrResource, f.Dir, err)
	}
	nir, err := filepath.Abs(filepath.Join(f.Dir, FixtureNIR))
	if err != nil {
		return "", "", fmt.Errorf("%w: resolve fixture dir %s: %v", ErrResource, f.Dir, err)
	}

	if !fileExists(rgb) || !fileExists(nir) {
		return "", "", fmt.Errorf("%w: expected %s and %s in %s", ErrNotFound, FixtureRGB, FixtureNIR, f.Dir)
	}
	return rgb, nir, nil
}

// StorageInputs downloads both objects from the object store and writes them
// verbatim into the job's workspace.
type StorageInputs struct {
	Store storage.ObjectStore
}

// Acquire fetches the RGB then the NIR object into the workspace. A failed
// or empty download aborts the job before any computation.
func (s StorageInputs) Acquire(ctx context.Context, job *model.Job) (string, string, error) {
	rgb, err := s.fetch(ctx, job.Inputs.RGB, filepath.Join(job.WorkspacePath, remoteRGBName))
	if err != nil {
		return "", "", err
	}
	nir, err := s.fetch(ctx, job.Inputs.NIR, filepath.Join(job.WorkspacePath, remoteNIRName))
	if err != nil {
		return "", "", err
	}
	return rgb, nir, nil
}

func (s StorageInputs) fetch(ctx context.Context, objectPath, dest string) (string, error) {
	data, err := s.Store.Download(ctx, objectPath)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", ErrTransfer, objectPath, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: download %s returned no data", ErrTransfer, objectPath)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrResource, dest, err)
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrResource, dest, err)
	}
	return abs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
