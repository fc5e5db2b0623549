package binfile

import "fmt"

// Cell is one slot of a record file. It holds either a record or the empty
// marker left behind when a random file grows past unwritten addresses.
type Cell[T any] struct {
	record  T
	present bool
}

// RecordCell returns a cell holding v.
func RecordCell[T any](v T) Cell[T] {
	return Cell[T]{record: v, present: true}
}

// EmptyCell returns the empty marker.
func EmptyCell[T any]() Cell[T] {
	return Cell[T]{}
}

// IsEmpty reports whether the cell is the empty marker.
func (c Cell[T]) IsEmpty() bool {
	return !c.present
}

// Record returns the stored record, or the zero value for an empty cell.
func (c Cell[T]) Record() T {
	return c.record
}

// Get returns the stored record and whether one is present.
func (c Cell[T]) Get() (T, bool) {
	return c.record, c.present
}

func (c Cell[T]) String() string {
	if !c.present {
		return "<empty>"
	}
	return fmt.Sprintf("%v", c.record)
}
