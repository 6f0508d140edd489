package app

import (
	"context"
	"os"

	"github.com/quantmind-br/autoload-priority/internal/utils"
)

// FileStore is the on-disk ManifestStore. Writes are atomic and retried on
// transient filesystem errors.
type FileStore struct {
	retrier *utils.Retrier
}

// NewFileStore creates a FileStore that retries writes with r
func NewFileStore(r *utils.Retrier) *FileStore {
	if r == nil {
		r = utils.NewRetrier(utils.DefaultRetrierOptions())
	}
	return &FileStore{retrier: r}
}

// Read returns the content of path
func (s *FileStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Write atomically replaces path with data
func (s *FileStore) Write(ctx context.Context, path string, data []byte) error {
	return s.retrier.Retry(ctx, func() error {
		return utils.WriteFileAtomic(path, data)
	})
}

// Exists reports whether path is a regular file
func (s *FileStore) Exists(path string) bool {
	return utils.FileExists(path)
}
