package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// ErrNotExist is returned by Load when no blob is stored under a name.
var ErrNotExist = errors.New("storage: blob does not exist")

const (
	filePerms = 0o644
	dirPerms  = 0o755
)

// BlobReader reads whole blobs by name.
type BlobReader interface {
	Load(name string) ([]byte, error)
}

// BlobWriter replaces whole blobs by name.
type BlobWriter interface {
	Save(name string, data []byte) error
	Remove(name string) error
}

// Source is a named blob store. A blob is always read and written whole.
type Source interface {
	BlobReader
	BlobWriter
}

// DiskSource stores each blob as one file. Relative names resolve against Dir;
// an empty Dir means the working directory.
type DiskSource struct {
	Dir string
}

func NewDiskSource(dir string) *DiskSource {
	return &DiskSource{Dir: dir}
}

// Path returns the file path backing name.
func (d *DiskSource) Path(name string) string {
	if filepath.IsAbs(name) || d.Dir == "" {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// Load reads the file backing name.
func (d *DiskSource) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(d.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save replaces the file backing name. Readers see either the old content or
// the new content, never a partial write. An existing file keeps its mode.
func (d *DiskSource) Save(name string, data []byte) error {
	path := d.Path(name)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	_, err := os.Stat(path)
	created := errors.Is(err, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// new files otherwise keep the 0600 temp file mode
	if created {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}

	return nil
}

// Remove deletes the file backing name. Removing a missing blob is not an error.
func (d *DiskSource) Remove(name string) error {
	err := os.Remove(d.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySource keeps blobs in memory.
type MemorySource struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemorySource() *MemorySource {
	return &MemorySource{blobs: make(map[string][]byte)}
}

func (m *MemorySource) Load(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	return bytes.Clone(data), nil
}

func (m *MemorySource) Save(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[name] = bytes.Clone(data)
	return nil
}

func (m *MemorySource) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, name)
	return nil
}

var (
	_ Source = (*DiskSource)(nil)
	_ Source = (*MemorySource)(nil)
)
