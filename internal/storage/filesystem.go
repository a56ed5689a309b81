package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FilesystemStore implements DocumentStore on the local filesystem.
// Suitable for single-node deployments and tests; a cloud blob backend
// plugs in behind the same interface.
type FilesystemStore struct {
	dir string
}

func NewFilesystemStore(uploadDir string) (*FilesystemStore, error) {
	dir := filepath.Join(uploadDir, "documents")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &FilesystemStore{dir: dir}, nil
}

func (s *FilesystemStore) Put(ctx context.Context, data []byte, meta Metadata) (string, error) {
	handle := uuid.New().String()
	meta.Size = int64(len(data))

	if err := os.WriteFile(s.dataPath(handle), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(s.metaPath(handle), metaBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	return handle, nil
}

func (s *FilesystemStore) Get(ctx context.Context, handle string) (*Document, error) {
	if !validHandle(handle) {
		return nil, fmt.Errorf("invalid document handle")
	}
	data, err := os.ReadFile(s.dataPath(handle))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc := &Document{Data: data}
	metaBytes, err := os.ReadFile(s.metaPath(handle))
	if err == nil {
		_ = json.Unmarshal(metaBytes, &doc.Metadata)
	}
	if doc.Size == 0 {
		doc.Size = int64(len(data))
	}
	return doc, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, handle string) error {
	if !validHandle(handle) {
		return fmt.Errorf("invalid document handle")
	}
	if err := os.Remove(s.dataPath(handle)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := os.Remove(s.metaPath(handle)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	return nil
}

func (s *FilesystemStore) dataPath(handle string) string {
	return filepath.Join(s.dir, handle)
}

func (s *FilesystemStore) metaPath(handle string) string {
	return filepath.Join(s.dir, handle+".meta.json")
}

// Handles are UUIDs we issued; anything else (path separators included) is
// rejected before touching the filesystem.
func validHandle(handle string) bool {
	if strings.ContainsAny(handle, "/\\") {
		return false
	}
	_, err := uuid.Parse(handle)
	return err == nil
}
