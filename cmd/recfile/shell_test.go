package main

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/recfile/binfile"
	"github.com/joeandaverde/recfile/internal/storage"
)

func newSession(t *testing.T) (*session, *bytes.Buffer, *storage.MemorySource) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	out := &bytes.Buffer{}
	src := storage.NewMemorySource()

	return &session{out: out, source: src, log: logger}, out, src
}

func run(t *testing.T, s *session, lines ...string) {
	t.Helper()

	for _, l := range lines {
		require.NoError(t, s.execute(l), l)
	}
}

func TestSession_SequentialScan(t *testing.T) {
	assert := require.New(t)
	s, out, _ := newSession(t)

	run(t, s,
		"open people.dat sequential",
		`put "Bob Smith"`,
		"put Sally",
		"seek 0",
		"get",
		"get",
		"eof",
	)

	assert.Contains(out.String(), "\"Bob Smith\"\n\"Sally\"\ntrue\n")
}

func TestSession_RandomEmptyCell(t *testing.T) {
	assert := require.New(t)
	s, out, _ := newSession(t)

	run(t, s, "open r.dat RANDOM 4", "seek 3", "get", "len")
	assert.Contains(out.String(), "<empty>\n4\n")

	assert.ErrorIs(s.execute("seek 5"), binfile.ErrAddressOutOfCapacity)
}

func TestSession_DefaultCapacity(t *testing.T) {
	s, _, _ := newSession(t)
	limit := 1
	s.capacity = &limit

	run(t, s, "open r.dat random", "seek 1")
	require.ErrorIs(t, s.execute("seek 2"), binfile.ErrAddressOutOfCapacity)
}

func TestSession_RandomBoundedWithoutCapacity(t *testing.T) {
	assert := require.New(t)
	s, _, _ := newSession(t)

	run(t, s, "open r.dat random")
	assert.ErrorIs(s.execute("seek 99999999999"), binfile.ErrAddressOutOfCapacity)
	assert.Equal(0, s.file.Len())
}

func TestSession_CloseWritesFile(t *testing.T) {
	assert := require.New(t)
	s, _, src := newSession(t)

	run(t, s, "open s.dat serial", "put one", "put two", "close")
	assert.Nil(s.file)

	blob, err := src.Load("s.dat")
	assert.NoError(err)
	slots, err := storage.Decode(blob)
	assert.NoError(err)
	assert.Equal([]storage.Slot{storage.DataSlot([]byte("one")), storage.DataSlot([]byte("two"))}, slots)
}

func TestSession_Errors(t *testing.T) {
	assert := require.New(t)
	s, _, _ := newSession(t)

	assert.Error(s.execute("get"))
	assert.ErrorIs(s.execute("open x.dat stream"), binfile.ErrInvalidMode)
	assert.Error(s.execute(`put "unterminated`))

	run(t, s, "open x.dat serial")
	assert.ErrorIs(s.execute("seek 0"), binfile.ErrUnsupportedOperation)
	assert.Error(s.execute("open y.dat serial"))
	assert.Error(s.execute("frobnicate"))
	assert.ErrorIs(s.execute("quit"), errQuit)
}

func TestWriteSlots(t *testing.T) {
	var out bytes.Buffer

	writeSlots(&out, []storage.Slot{storage.DataSlot([]byte("hi")), storage.EmptySlot()}, true)

	require.Equal(t, "2 slots\n0\t2 bytes\t\"hi\"\n1\tempty\n", out.String())
}
