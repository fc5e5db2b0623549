package binfile

import (
	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/recfile/internal/storage"
)

// Source is a named blob store. Load must return an error wrapping ErrNotExist
// for a name that was never saved.
type Source = storage.Source

// ErrNotExist marks a missing blob.
var ErrNotExist = storage.ErrNotExist

// NewMemorySource returns a Source that keeps blobs in memory.
func NewMemorySource() Source {
	return storage.NewMemorySource()
}

type options struct {
	capacity    int
	hasCapacity bool
	codec       any
	source      Source
	log         logrus.FieldLogger
}

// Option configures Open.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		source: storage.NewDiskSource(""),
		log:    logrus.StandardLogger(),
	}
}

// WithCapacity bounds the highest address a random file may seek to.
// Sequential and serial files ignore it.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
		o.hasCapacity = true
	}
}

// WithCodec sets the record codec. The codec's record type must match the
// type Open is instantiated with. The default is GobCodec.
func WithCodec[T any](c Codec[T]) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithSource sets where blobs are loaded from and saved to. The default is a
// DiskSource rooted at the working directory.
func WithSource(src Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithDir is shorthand for a DiskSource rooted at dir.
func WithDir(dir string) Option {
	return WithSource(storage.NewDiskSource(dir))
}

// WithLogger sets the logger used for load and close events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}
