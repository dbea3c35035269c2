// Package storage provides access to the remote object store that holds
// captured field images and published stress maps. The orchestration layer
// depends only on the ObjectStore interface; the Supabase Storage client is
// the production implementation.
package storage

import "context"

// ObjectStore is the object-storage collaborator for a single bucket.
// It is assumed stateless and safe for concurrent use.
type ObjectStore interface {
	// Download returns the full byte content of the object at the given path.
	Download(ctx context.Context, objectPath string) ([]byte, error)

	// Upload stores data under the given path with the declared content type.
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) error

	// PublicURL returns the public-access URL for an object. It is
	// deterministic and assumed valid for any just-uploaded object.
	PublicURL(objectPath string) string
}
