package binfile

import "fmt"

// RandomFile addresses slots directly. Seeking past the end grows the file
// with empty cells; the pointer never moves on its own. GetRecord and
// PutRecord use the base behavior, so reading an unwritten slot returns the
// empty cell.
type RandomFile[T any] struct {
	*store[T]

	capacity    int
	hasCapacity bool
}

// Seek grows the file so that address is valid and moves the pointer there.
func (f *RandomFile[T]) Seek(address int) error {
	if err := f.checkOpen(); err != nil {
		return err
	}
	if address < 0 {
		return addressNotFound(address)
	}
	if f.hasCapacity && address > f.capacity {
		return fmt.Errorf("%w: %d > %d", ErrAddressOutOfCapacity, address, f.capacity)
	}

	if n := address + 1 - len(f.slots); n > 0 {
		f.slots = append(f.slots, make([]Cell[T], n)...)
	}
	f.pointer = address

	return nil
}

// Capacity returns the configured capacity and whether one is set.
func (f *RandomFile[T]) Capacity() (int, bool) {
	return f.capacity, f.hasCapacity
}
