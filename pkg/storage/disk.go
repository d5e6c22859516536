// Package storage provides the filesystem abstraction behind the vendor file
// staging area and the raw-feed archive.
//
// Two drivers are available:
//   - "local"  — local filesystem (default; holds staging/<vendor>/)
//   - "s3"     — S3-compatible object storage (archive of fetched raw feeds)
//
// Quick start:
//
//	// boot once (internal/server):
//	storage.Connect()
//
//	// default disk
//	storage.Put("staging/apex/catalog.txt", data)
//	data, _ := storage.Get("staging/apex/catalog.txt")
//
//	// named disk
//	storage.Use("s3").Put("archive/apex/2026-08-29/catalog.txt", data)
package storage

import (
	"io"
	"time"
)

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// URL returns the public URL for path (meaningful for public disks / S3).
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// Copy creates a copy of src at dst.
	Copy(src, dst string) error

	// Files lists non-recursive filenames directly inside directory.
	Files(directory string) ([]string, error)

	// MakeDirectory creates directory (and any parents).
	MakeDirectory(path string) error

	// DeleteDirectory removes directory and all its contents.
	DeleteDirectory(path string) error
}
