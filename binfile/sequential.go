package binfile

// SequentialFile appends on write and reads forward from the pointer. Seek
// moves the pointer for direct reads but never grows the file.
//
// GetRecord fails on an empty cell without advancing, so a scan that loops
// on EOF must stop on the first error or Seek past the gap.
type SequentialFile[T any] struct {
	*store[T]
}

// PutRecord appends record, ignoring the pointer.
func (f *SequentialFile[T]) PutRecord(record T) error {
	return f.appendRecord(record)
}

// GetRecord reads the record at the pointer and advances it by one.
func (f *SequentialFile[T]) GetRecord() (Cell[T], error) {
	return f.next()
}
