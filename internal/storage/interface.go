package storage

import "context"

// Metadata describes a stored document. This core never inspects file
// contents; it only carries them between the caller and the store.
type Metadata struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Document is the stored bytes plus their metadata.
type Document struct {
	Metadata
	Data []byte
}

// DocumentStore is the blob collaborator used for resumes and offer
// letters. Handles are opaque; callers persist them and hand them back.
type DocumentStore interface {
	Put(ctx context.Context, data []byte, meta Metadata) (handle string, err error)
	Get(ctx context.Context, handle string) (*Document, error)
	Delete(ctx context.Context, handle string) error
}
