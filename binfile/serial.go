package binfile

// SerialFile appends on write and reads forward from the start. It has no
// direct access at all.
//
// GetRecord fails on an empty cell without advancing. With no Seek there is
// no way past the gap, so a scan that loops on EOF must stop on the first
// error.
type SerialFile[T any] struct {
	*store[T]
}

// Seek always fails with ErrUnsupportedOperation.
func (f *SerialFile[T]) Seek(int) error {
	return ErrUnsupportedOperation
}

// PutRecord appends record.
func (f *SerialFile[T]) PutRecord(record T) error {
	return f.appendRecord(record)
}

// GetRecord reads the record at the pointer and advances it by one.
func (f *SerialFile[T]) GetRecord() (Cell[T], error) {
	return f.next()
}
