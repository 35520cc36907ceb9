package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/pkg"
)

const documentJsonFileName = "user-data.json"

// FileStore keeps the document as a single JSON file inside the data
// directory. It is the synchronous floor of the persistence facade:
// every mutation hits it before the call returns.
type FileStore struct {
	dataDir string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if dataDir == "" {
		return nil, errors.New("data dir cannot be empty")
	}
	exists, err := pkg.PathExists(dataDir, true)
	if err != nil {
		return nil, fmt.Errorf("check data dir %s: %w", dataDir, err)
	}
	if !exists {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
		}
	}
	return &FileStore{dataDir: dataDir}, nil
}

func (fs *FileStore) Name() string {
	return "file"
}

func (fs *FileStore) documentPath() string {
	return path.Join(fs.dataDir, documentJsonFileName)
}

func (fs *FileStore) Read(_ context.Context) ([]byte, error) {
	documentPath := fs.documentPath()

	exists, err := pkg.PathExists(documentPath, false)
	if err != nil {
		return nil, fmt.Errorf("check document file %s: %w", documentPath, err)
	}
	if !exists {
		return nil, ErrDocumentNotFound
	}

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("read document file: %w", err)
	}
	return data, nil
}

func (fs *FileStore) Write(_ context.Context, data []byte) error {
	documentPath := fs.documentPath()
	log.Debugf("file store: saving document to: %s", documentPath)

	// write to a temp file first so a crash mid-write never
	// leaves a truncated document behind
	tmpPath := documentPath + ".tmp"
	dst, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create document file: %w", err)
	}

	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write document file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close document file: %w", err)
	}

	if err := os.Rename(tmpPath, documentPath); err != nil {
		return fmt.Errorf("replace document file: %w", err)
	}

	return nil
}

func (fs *FileStore) Delete(_ context.Context) error {
	documentPath := fs.documentPath()
	if err := os.Remove(documentPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
