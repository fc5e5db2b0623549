package storage

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestHeader_WriteTo(t *testing.T) {
	assert := require.New(t)

	buf := bytes.Buffer{}
	h := Header{Version: FormatVersion, SlotCount: 3, Checksum: 0xDEADBEEF}

	n, err := h.WriteTo(&buf)
	assert.NoError(err)
	assert.EqualValues(HeaderLen, n)

	bs := buf.Bytes()
	assert.Equal([]byte{'R', 'E', 'C', 'F'}, bs[:4])
	assert.Equal(FormatVersion, binary.BigEndian.Uint16(bs[4:6]))
	assert.Equal(uint32(3), binary.BigEndian.Uint32(bs[8:12]))
	assert.Equal(uint32(0xDEADBEEF), binary.BigEndian.Uint32(bs[12:16]))

	parsed, err := ParseHeader(bs)
	assert.NoError(err)
	assert.Equal(h, parsed)
}

func TestEncode_RoundTrip(t *testing.T) {
	assert := require.New(t)

	slots := []Slot{
		DataSlot([]byte("Bob")),
		EmptySlot(),
		DataSlot([]byte{}),
		EmptySlot(),
		DataSlot(bytes.Repeat([]byte{0xAB}, 300)),
	}

	decoded, err := Decode(Encode(slots))
	assert.NoError(err)

	if diff := cmp.Diff(slots, decoded); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_Empty(t *testing.T) {
	assert := require.New(t)

	data := Encode(nil)
	assert.Len(data, HeaderLen)

	decoded, err := Decode(data)
	assert.NoError(err)
	assert.Empty(decoded)
}

func TestDecode_Truncated(t *testing.T) {
	encoded := Encode([]Slot{DataSlot([]byte("Sally")), EmptySlot(), DataSlot([]byte("Alice"))})

	for i := 0; i < len(encoded); i++ {
		_, err := Decode(encoded[:i])
		require.Error(t, err, "decoding %d of %d bytes", i, len(encoded))
	}
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	assert := require.New(t)

	encoded := Encode([]Slot{DataSlot([]byte("Bob"))})
	encoded[len(encoded)-1] ^= 0xFF

	_, err := Decode(encoded)
	assert.ErrorIs(err, ErrChecksumMismatch)
}

func TestDecode_BadMagic(t *testing.T) {
	assert := require.New(t)

	encoded := Encode([]Slot{EmptySlot()})
	copy(encoded, "JUNK")

	_, err := Decode(encoded)
	assert.ErrorIs(err, ErrBadMagic)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	assert := require.New(t)

	encoded := Encode(nil)
	binary.BigEndian.PutUint16(encoded[4:], FormatVersion+1)

	_, err := Decode(encoded)
	assert.ErrorIs(err, ErrUnsupportedVersion)
}

func TestDecode_SlotCountLargerThanBody(t *testing.T) {
	assert := require.New(t)

	encoded := Encode([]Slot{EmptySlot()})
	binary.BigEndian.PutUint32(encoded[8:], 1000)

	_, err := Decode(encoded)
	assert.ErrorIs(err, ErrTruncated)
}
