package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Swayam-a/agrovision-backend/internal/model"
)

func TestCreateWorkspace(t *testing.T) {
	ws := NewWorkspaces(t.TempDir())

	dir, err := ws.Create("01TESTJOB")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("Create returned non-absolute path %q", dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("workspace dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("workspace %q is not a directory", dir)
	}
}

func TestCreateWorkspaceUniquePerJob(t *testing.T) {
	ws := NewWorkspaces(t.TempDir())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		dir, err := ws.Create(model.NewID())
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[dir] {
			t.Fatalf("two jobs share workspace %q", dir)
		}
		seen[dir] = true
	}
}

func TestCreateWorkspaceFailure(t *testing.T) {
	// A regular file where the base dir should be makes MkdirAll fail.
	base := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(base, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	ws := NewWorkspaces(base)
	_, err := ws.Create("01TESTJOB")
	if !errors.Is(err, ErrResource) {
		t.Errorf("Create error = %v, want ErrResource", err)
	}
}

func TestDestroyWorkspace(t *testing.T) {
	ws := NewWorkspaces(t.TempDir())
	dir, err := ws.Create("01TESTJOB")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "input_rgb.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := ws.Destroy(dir); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("workspace %q still exists after Destroy", dir)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	ws := NewWorkspaces(t.TempDir())
	dir, err := ws.Create("01TESTJOB")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ws.Destroy(dir); err != nil {
		t.Fatalf("first Destroy: %v", err)
	}
	if err := ws.Destroy(dir); err != nil {
		t.Errorf("second Destroy on absent dir: %v, want nil", err)
	}
	if err := ws.Destroy(""); err != nil {
		t.Errorf("Destroy on empty path: %v, want nil", err)
	}
}
