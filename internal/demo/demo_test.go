package demo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/recfile/binfile"
)

func newRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	out := &bytes.Buffer{}

	return &Runner{Out: out, Source: binfile.NewMemorySource(), Log: logger}, out
}

func TestRunner_Serial(t *testing.T) {
	assert := require.New(t)
	r, out := newRunner(t)

	assert.NoError(r.Serial())

	assert.Contains(out.String(), strings.Join([]string{
		"At position 0 we have Bob who is 77 years old",
		"At position 1 we have Sally who is 60 years old",
		"At position 2 we have Alice who is 50 years old",
	}, "\n"))
	assert.Contains(out.String(), "Seek refused")
}

func TestRunner_Sequential(t *testing.T) {
	assert := require.New(t)
	r, out := newRunner(t)

	assert.NoError(r.Sequential())

	assert.Contains(out.String(), "At address 2 we have Alice who is 50 years old")
	assert.Contains(out.String(), "Jumped straight to address 2 and found Alice.")
}

func TestRunner_Random(t *testing.T) {
	assert := require.New(t)
	r, out := newRunner(t)

	assert.NoError(r.Random())

	assert.Contains(out.String(), strings.Join([]string{
		"Address 4 holds Alice who is 50 years old",
		"Address 3 is empty",
		"Address 2 holds Sally who is 60 years old",
		"Address 1 is empty",
		"Address 0 holds Bob who is 77 years old",
	}, "\n"))
}

func TestRunner_RunReplacesStaleFiles(t *testing.T) {
	assert := require.New(t)
	r, _ := newRunner(t)

	assert.NoError(r.Run())
	assert.NoError(r.Run())

	f, err := binfile.Open[Person]("serial.dat", "SERIAL", binfile.WithSource(r.Source), binfile.WithLogger(r.Log))
	assert.NoError(err)
	assert.Equal(3, f.Len())

	var got []Person
	for !f.EOF() {
		c, err := f.GetRecord()
		assert.NoError(err)
		got = append(got, c.Record())
	}
	assert.Equal(People(), got)
}
