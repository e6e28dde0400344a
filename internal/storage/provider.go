// Package storage defines the vault file-system abstraction. The vault
// is the directory holding bitácora period files and supporting
// documents; all paths are relative to its root.
package storage

import "time"

// FileInfo describes one Markdown file in the vault.
type FileInfo struct {
	Path      string // relative to the vault root
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for vault file operations.
type Provider interface {
	// List walks dir (relative to the vault root) and returns metadata
	// for every .md file found.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath within the vault.
	Move(oldPath, newPath string) error
	// Exists reports whether a file exists at path.
	Exists(path string) bool
}
