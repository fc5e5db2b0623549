// Package binfile manages record files: a persisted sequence of cells read
// and written through one of three access disciplines.
//
// A random file is addressed directly with Seek. Sequential and serial files
// append on write and advance on read; only sequential files may Seek. The
// whole file is loaded when opened and written back when closed.
package binfile

import "fmt"

// File is an open session over one record file.
type File[T any] interface {
	// Seek moves the pointer to address.
	Seek(address int) error
	// PutRecord stores a record. Where it lands depends on the mode.
	PutRecord(record T) error
	// GetRecord reads the cell at the pointer.
	GetRecord() (Cell[T], error)
	// EOF reports whether the pointer is past the last slot.
	EOF() bool
	// Close writes every slot back to storage.
	Close() error

	Len() int
	Pointer() int
	Filename() string
	Mode() Mode
}

// Open returns a file over filename using the discipline named by mode, one of
// "RANDOM", "SEQUENTIAL" or "SERIAL". Existing data for filename is loaded;
// missing or unreadable data yields an empty file rather than an error.
func Open[T any](filename string, mode string, opts ...Option) (File[T], error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	codec, err := codecFor[T](o.codec)
	if err != nil {
		return nil, err
	}

	s := newStore(filename, m, codec, o)

	switch m {
	case ModeRandom:
		return &RandomFile[T]{store: s, capacity: o.capacity, hasCapacity: o.hasCapacity}, nil
	case ModeSequential:
		return &SequentialFile[T]{store: s}, nil
	default:
		return &SerialFile[T]{store: s}, nil
	}
}

func codecFor[T any](c any) (Codec[T], error) {
	if c == nil {
		return GobCodec[T]{}, nil
	}

	codec, ok := c.(Codec[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("binfile: codec %T does not encode %T records", c, zero)
	}
	return codec, nil
}

var (
	_ File[string] = (*RandomFile[string])(nil)
	_ File[string] = (*SequentialFile[string])(nil)
	_ File[string] = (*SerialFile[string])(nil)
)
