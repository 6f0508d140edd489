package domain

//go:generate mockgen -source=interfaces.go -destination=../mocks/store_mock.go -package=mocks

import "context"

// ManifestStore reads and writes generated manifest files
type ManifestStore interface {
	// Read returns the file content
	Read(ctx context.Context, path string) ([]byte, error)
	// Write replaces the file content
	Write(ctx context.Context, path string, data []byte) error
	// Exists reports whether the file exists
	Exists(path string) bool
}
