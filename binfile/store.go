package binfile

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/recfile/internal/storage"
)

type state int

const (
	stateOpen state = iota
	stateClosed
)

// store is the slot sequence shared by every access mode. Its methods are the
// base behavior; modes override Seek, PutRecord and GetRecord.
type store[T any] struct {
	filename string
	mode     Mode
	pointer  int
	state    state
	slots    []Cell[T]

	codec  Codec[T]
	source Source
	log    logrus.FieldLogger
}

func newStore[T any](filename string, mode Mode, codec Codec[T], o *options) *store[T] {
	s := &store[T]{
		filename: filename,
		mode:     mode,
		codec:    codec,
		source:   o.source,
		log: o.log.WithFields(logrus.Fields{
			"file": filename,
			"mode": mode.String(),
		}),
	}
	s.load()
	return s
}

// load replaces slots with the persisted sequence. Any failure leaves the
// store empty.
func (s *store[T]) load() {
	s.slots = nil

	data, err := s.source.Load(s.filename)
	if errors.Is(err, storage.ErrNotExist) {
		s.log.Debug("no existing data, starting empty")
		return
	}
	if err != nil {
		s.log.WithError(err).Warn("unable to read file, starting empty")
		return
	}

	raw, err := storage.Decode(data)
	if err != nil {
		s.log.WithError(err).Warn("unable to decode file, starting empty")
		return
	}

	slots := make([]Cell[T], len(raw))
	for i, r := range raw {
		if !r.Present {
			continue
		}

		v, err := s.codec.Unmarshal(r.Data)
		if err != nil {
			s.log.WithError(err).WithField("address", i).Warn("unable to decode record, starting empty")
			return
		}
		slots[i] = RecordCell(v)
	}

	s.slots = slots
	s.log.Debugf("loaded %d slots", len(slots))
}

func (s *store[T]) checkOpen() error {
	if s.state == stateClosed {
		return ErrClosed
	}
	return nil
}

func (s *store[T]) inBounds(address int) bool {
	return address >= 0 && address < len(s.slots)
}

func addressNotFound(address int) error {
	return fmt.Errorf("%w: %d", ErrAddressNotFound, address)
}

// Seek moves the pointer without any bounds check.
func (s *store[T]) Seek(address int) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if address < 0 {
		return addressNotFound(address)
	}

	s.pointer = address
	return nil
}

// GetRecord returns the cell at the pointer.
func (s *store[T]) GetRecord() (Cell[T], error) {
	if err := s.checkOpen(); err != nil {
		return Cell[T]{}, err
	}
	if !s.inBounds(s.pointer) {
		return Cell[T]{}, addressNotFound(s.pointer)
	}

	return s.slots[s.pointer], nil
}

// PutRecord overwrites the cell at the pointer.
func (s *store[T]) PutRecord(record T) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if !s.inBounds(s.pointer) {
		return addressNotFound(s.pointer)
	}

	s.slots[s.pointer] = RecordCell(record)
	return nil
}

// EOF reports whether the pointer is past the last slot. A closed file is
// always at EOF.
func (s *store[T]) EOF() bool {
	return s.state == stateClosed || s.pointer >= len(s.slots)
}

// Close persists every slot and closes the file. When persisting fails the
// file stays open.
func (s *store[T]) Close() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	raw := make([]storage.Slot, len(s.slots))
	for i, c := range s.slots {
		v, ok := c.Get()
		if !ok {
			raw[i] = storage.EmptySlot()
			continue
		}

		data, err := s.codec.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode record at address %d: %w", i, err)
		}
		raw[i] = storage.DataSlot(data)
	}

	if err := s.source.Save(s.filename, storage.Encode(raw)); err != nil {
		return fmt.Errorf("save %s: %w", s.filename, err)
	}

	s.state = stateClosed
	s.log.Debugf("closed with %d slots", len(raw))

	return nil
}

// appendRecord adds a record after the last slot.
func (s *store[T]) appendRecord(record T) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	s.slots = append(s.slots, RecordCell(record))
	return nil
}

// next reads the record at the pointer and advances past it. Empty markers
// are not records: reading one fails and leaves the pointer in place.
func (s *store[T]) next() (Cell[T], error) {
	c, err := s.GetRecord()
	if err != nil {
		return c, err
	}
	if c.IsEmpty() {
		return Cell[T]{}, fmt.Errorf("%w: %d holds no record", ErrAddressNotFound, s.pointer)
	}

	s.pointer++
	return c, nil
}

func (s *store[T]) Len() int {
	return len(s.slots)
}

func (s *store[T]) Pointer() int {
	return s.pointer
}

func (s *store[T]) Filename() string {
	return s.filename
}

func (s *store[T]) Mode() Mode {
	return s.mode
}
