package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Swayam-a/agrovision-backend/internal/model"
)

// fakeStore is an in-memory ObjectStore for pipeline tests.
type fakeStore struct {
	objects      map[string][]byte
	downloads    []string
	uploads      []string
	failDownload error
	failUpload   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Download(_ context.Context, objectPath string) ([]byte, error) {
	f.downloads = append(f.downloads, objectPath)
	if f.failDownload != nil {
		return nil, f.failDownload
	}
	data, ok := f.objects[objectPath]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectPath)
	}
	return data, nil
}

func (f *fakeStore) Upload(_ context.Context, objectPath string, data []byte, _ string) error {
	f.uploads = append(f.uploads, objectPath)
	if f.failUpload != nil {
		return f.failUpload
	}
	f.objects[objectPath] = append([]byte(nil), data...)
	return nil
}

func (f *fakeStore) PublicURL(objectPath string) string {
	return "https://cdn.example.com/" + objectPath
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{FixtureRGB, FixtureNIR} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"-bytes"), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
}

func TestFixtureInputsAcquire(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	job := model.NewJob(model.ModeLocal, model.InputRefs{RGB: FixtureRGB, NIR: FixtureNIR})
	rgb, nir, err := FixtureInputs{Dir: dir}.Acquire(context.Background(), job)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !filepath.IsAbs(rgb) || !filepath.IsAbs(nir) {
		t.Errorf("Acquire returned non-absolute paths %q, %q", rgb, nir)
	}
	if filepath.Base(rgb) != FixtureRGB || filepath.Base(nir) != FixtureNIR {
		t.Errorf("Acquire returned %q, %q, want fixture names", rgb, nir)
	}
}

func TestFixtureInputsMissingFile(t *testing.T) {
	tests := []struct {
		name    string
		present []string
	}{
		{"both missing", nil},
		{"nir missing", []string{FixtureRGB}},
		{"rgb missing", []string{FixtureNIR}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.present {
				if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
					t.Fatalf("write fixture: %v", err)
				}
			}

			job := model.NewJob(model.ModeLocal, model.InputRefs{RGB: FixtureRGB, NIR: FixtureNIR})
			_, _, err := FixtureInputs{Dir: dir}.Acquire(context.Background(), job)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Acquire error = %v, want ErrNotFound", err)
			}
			// The diagnostic names both expected files.
			if !strings.Contains(err.Error(), FixtureRGB) || !strings.Contains(err.Error(), FixtureNIR) {
				t.Errorf("error %q does not name both expected files", err)
			}
		})
	}
}

func TestStorageInputsAcquire(t *testing.T) {
	store := newFakeStore()
	store.objects["fields/rgb.png"] = []byte("rgb-bytes")
	store.objects["fields/nir.png"] = []byte("nir-bytes")

	job := model.NewJob(model.ModeRemote, model.InputRefs{RGB: "fields/rgb.png", NIR: "fields/nir.png"})
	job.WorkspacePath = t.TempDir()

	rgb, nir, err := StorageInputs{Store: store}.Acquire(context.Background(), job)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	gotRGB, err := os.ReadFile(rgb)
	if err != nil {
		t.Fatalf("read materialized rgb: %v", err)
	}
	if !bytes.Equal(gotRGB, []byte("rgb-bytes")) {
		t.Errorf("rgb bytes = %q, want verbatim download content", gotRGB)
	}
	gotNIR, err := os.ReadFile(nir)
	if err != nil {
		t.Fatalf("read materialized nir: %v", err)
	}
	if !bytes.Equal(gotNIR, []byte("nir-bytes")) {
		t.Errorf("nir bytes = %q, want verbatim download content", gotNIR)
	}

	if filepath.Dir(rgb) != job.WorkspacePath || filepath.Dir(nir) != job.WorkspacePath {
		t.Errorf("inputs materialized outside workspace: %q, %q", rgb, nir)
	}
}

func TestStorageInputsDownloadFailure(t *testing.T) {
	store := newFakeStore()
	store.failDownload = errors.New("connection reset")

	job := model.NewJob(model.ModeRemote, model.InputRefs{RGB: "fields/rgb.png", NIR: "fields/nir.png"})
	job.WorkspacePath = t.TempDir()

	_, _, err := StorageInputs{Store: store}.Acquire(context.Background(), job)
	if !errors.Is(err, ErrTransfer) {
		t.Fatalf("Acquire error = %v, want ErrTransfer", err)
	}
	// The NIR download is never attempted once the RGB download fails.
	if len(store.downloads) != 1 {
		t.Errorf("downloads attempted = %d, want 1", len(store.downloads))
	}
}

func TestStorageInputsEmptyDownload(t *testing.T) {
	store := newFakeStore()
	store.objects["fields/rgb.png"] = []byte{}

	job := model.NewJob(model.ModeRemote, model.InputRefs{RGB: "fields/rgb.png", NIR: "fields/nir.png"})
	job.WorkspacePath = t.TempDir()

	_, _, err := StorageInputs{Store: store}.Acquire(context.Background(), job)
	if !errors.Is(err, ErrTransfer) {
		t.Fatalf("Acquire error = %v, want ErrTransfer", err)
	}
}
