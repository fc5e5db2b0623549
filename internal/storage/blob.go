package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	// HeaderLen is the size of the blob header in bytes.
	HeaderLen = 16

	// FormatVersion is the only blob format version written and accepted.
	FormatVersion uint16 = 1
)

// Magic identifies a record file blob.
var Magic = [4]byte{'R', 'E', 'C', 'F'}

var (
	ErrBadMagic           = errors.New("storage: not a record file")
	ErrUnsupportedVersion = errors.New("storage: unsupported format version")
	ErrChecksumMismatch   = errors.New("storage: checksum mismatch")
	ErrTruncated          = errors.New("storage: truncated blob")
)

const (
	slotEmpty   byte = 0
	slotPresent byte = 1
)

// Header Format
// Offset	Size	Description
// 0			4	Magic "RECF"
// 4			2	Format version
// 6			2	Reserved, always zero
// 8			4	Number of slots
// 12			4	CRC32 (IEEE) of everything after the header

// Header describes a blob.
type Header struct {
	Version   uint16
	SlotCount uint32
	Checksum  uint32
}

// Slot is one persisted cell. Data is meaningful only when Present is true.
type Slot struct {
	Present bool
	Data    []byte
}

// EmptySlot returns the empty marker.
func EmptySlot() Slot {
	return Slot{}
}

// DataSlot returns a slot holding data.
func DataSlot(data []byte) Slot {
	return Slot{Present: true, Data: data}
}

// WriteTo writes the header in its fixed 16 byte form.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, HeaderLen)
	copy(buf, Magic[:])
	binary.BigEndian.PutUint16(buf[4:], h.Version)
	binary.BigEndian.PutUint32(buf[8:], h.SlotCount)
	binary.BigEndian.PutUint32(buf[12:], h.Checksum)

	n, err := w.Write(buf)
	return int64(n), err
}

// ParseHeader parses and validates the first HeaderLen bytes of a blob.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderLen {
		return Header{}, ErrTruncated
	}

	if !bytes.Equal(data[:4], Magic[:]) {
		return Header{}, ErrBadMagic
	}

	h := Header{
		Version:   binary.BigEndian.Uint16(data[4:6]),
		SlotCount: binary.BigEndian.Uint32(data[8:12]),
		Checksum:  binary.BigEndian.Uint32(data[12:16]),
	}

	if h.Version != FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	return h, nil
}

// Encode serializes the full slot sequence, empty markers included.
func Encode(slots []Slot) []byte {
	var body bytes.Buffer
	lenBuf := make([]byte, binary.MaxVarintLen64)

	for _, s := range slots {
		if !s.Present {
			body.WriteByte(slotEmpty)
			continue
		}

		body.WriteByte(slotPresent)
		n := binary.PutUvarint(lenBuf, uint64(len(s.Data)))
		body.Write(lenBuf[:n])
		body.Write(s.Data)
	}

	h := Header{
		Version:   FormatVersion,
		SlotCount: uint32(len(slots)),
		Checksum:  crc32.ChecksumIEEE(body.Bytes()),
	}

	out := bytes.NewBuffer(make([]byte, 0, HeaderLen+body.Len()))
	_, _ = h.WriteTo(out)
	out.Write(body.Bytes())

	return out.Bytes()
}

// Decode reconstructs a slot sequence written by Encode.
func Decode(data []byte) ([]Slot, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderLen:]
	if crc32.ChecksumIEEE(body) != h.Checksum {
		return nil, ErrChecksumMismatch
	}

	// Every slot takes at least one byte, so a count larger than the body is corrupt.
	if uint64(h.SlotCount) > uint64(len(body)) {
		return nil, ErrTruncated
	}

	slots := make([]Slot, 0, h.SlotCount)
	r := bytes.NewReader(body)

	for i := uint32(0); i < h.SlotCount; i++ {
		flag, err := r.ReadByte()
		if err != nil {
			return nil, ErrTruncated
		}

		switch flag {
		case slotEmpty:
			slots = append(slots, EmptySlot())
		case slotPresent:
			size, err := binary.ReadUvarint(r)
			if err != nil {
				return nil, ErrTruncated
			}
			if size > uint64(r.Len()) {
				return nil, ErrTruncated
			}

			payload := make([]byte, size)
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, ErrTruncated
			}
			slots = append(slots, DataSlot(payload))
		default:
			return nil, fmt.Errorf("storage: slot %d has invalid flag 0x%02x", i, flag)
		}
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("storage: %d trailing bytes after %d slots", r.Len(), h.SlotCount)
	}

	return slots, nil
}
