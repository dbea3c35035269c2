package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/Swayam-a/agrovision-backend/internal/storage"
)

// outputContentType is the declared content type for published stress maps.
const outputContentType = "image/png"

// Publisher makes a finished artifact available to the caller and returns
// the reference the caller should use: a filesystem path in local mode, a
// public URL in remote mode.
type Publisher interface {
	Publish(ctx context.Context, artifactPath, destRef string) (string, error)
}

// LocalPublisher leaves the artifact where the computation wrote it.
type LocalPublisher struct{}

// Publish returns the artifact path unchanged.
func (LocalPublisher) Publish(_ context.Context, artifactPath, _ string) (string, error) {
	return artifactPath, nil
}

// StoragePublisher uploads the artifact to the object store under destRef
// and resolves its public URL.
type StoragePublisher struct {
	Store storage.ObjectStore
}

// Publish uploads the artifact bytes and returns the public URL. A failed
// upload is fatal to the job; nothing half-uploaded is ever reported as
// success.
func (p StoragePublisher) Publish(ctx context.Context, artifactPath, destRef string) (string, error) {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return "", fmt.Errorf("%w: read artifact %s: %v", ErrResource, artifactPath, err)
	}
	if err := p.Store.Upload(ctx, destRef, data, outputContentType); err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrTransfer, destRef, err)
	}
	return p.Store.PublicURL(destRef), nil
}
