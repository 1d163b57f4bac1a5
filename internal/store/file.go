package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var _ DocumentStore = (*FileStore)(nil)

const docExt = ".json"

// FileStore keeps one JSON file per document under basePath/<collection>/.
// Collection and document IDs are path-escaped so any item name is a valid
// file name.
type FileStore struct {
	basePath string
}

func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Get(_ context.Context, collection, id string) (*Document, error) {
	filePath, err := s.docPath(collection, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return decodeDocument(id, data)
}

func (s *FileStore) Set(_ context.Context, collection, id string, fields map[string]any) error {
	filePath, err := s.docPath(collection, id)
	if err != nil {
		return err
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}

	// Write to a temp file and rename so readers never see a partial document.
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(f.Name()); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(f.Name()); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(f.Name(), filePath); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("failed to move document into place: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, collection, id string) error {
	filePath, err := s.docPath(collection, id)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context, collection string) ([]*Document, error) {
	dir, err := s.safeJoin(url.PathEscape(collection))
	if err != nil {
		return nil, err
	}

	// Escaped file names do not sort like the IDs they encode; sort after decoding.
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, docExt) || strings.HasPrefix(name, ".tmp-") {
			continue
		}
		id, err := url.PathUnescape(strings.TrimSuffix(name, docExt))
		if err != nil {
			slog.Warn("skipping document with undecodable name", "file", name, "error", err)
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		doc, err := decodeDocument(id, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	SortDocuments(docs)
	return docs, nil
}

func (s *FileStore) docPath(collection, id string) (string, error) {
	if collection == "" || id == "" {
		return "", fmt.Errorf("collection and id are required")
	}
	return s.safeJoin(filepath.Join(url.PathEscape(collection), url.PathEscape(id)+docExt))
}

// safeJoin resolves rel relative to basePath and rejects directory traversal.
func (s *FileStore) safeJoin(rel string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, rel))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
