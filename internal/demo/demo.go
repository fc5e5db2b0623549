// Package demo walks through the three file disciplines with a handful of
// person records.
package demo

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/recfile/binfile"
)

// Person is the sample record.
type Person struct {
	Name string
	Age  int
}

// People returns the sample records in insertion order.
func People() []Person {
	return []Person{
		{Name: "Bob", Age: 77},
		{Name: "Sally", Age: 60},
		{Name: "Alice", Age: 50},
	}
}

// Files are the names the demo writes to.
var Files = []string{"serial.dat", "sequential.dat", "random.dat"}

// Runner prints the demo to Out, storing files in Source.
type Runner struct {
	Out    io.Writer
	Source binfile.Source
	Log    logrus.FieldLogger
}

// Run removes files left by an earlier run, then runs each demo in turn.
func (r *Runner) Run() error {
	for _, name := range Files {
		if err := r.Source.Remove(name); err != nil {
			return fmt.Errorf("remove stale %s: %w", name, err)
		}
	}

	steps := []func() error{r.Serial, r.Sequential, r.Random}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) open(name, mode string) (binfile.File[Person], error) {
	return binfile.Open[Person](name, mode, binfile.WithSource(r.Source), binfile.WithLogger(r.Log))
}

func (r *Runner) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.Out, format, args...)
}

// Serial appends the people and reads them back from the start.
func (r *Runner) Serial() error {
	r.printf("\nSerial file demo\n\n")

	f, err := r.open("serial.dat", "SERIAL")
	if err != nil {
		return err
	}

	for _, p := range People() {
		if err := f.PutRecord(p); err != nil {
			return err
		}
	}

	for i := 0; !f.EOF(); i++ {
		c, err := f.GetRecord()
		if err != nil {
			return err
		}
		p := c.Record()
		r.printf("At position %d we have %s who is %d years old\n", i, p.Name, p.Age)
	}

	if err := f.Seek(0); err != nil {
		r.printf("Seek refused: %v\n", err)
	}

	if err := f.Close(); err != nil {
		return err
	}

	r.printf("Serial files support sequential access only.\n")
	return nil
}

// Sequential appends the people, scans them, then jumps straight to the last one.
func (r *Runner) Sequential() error {
	r.printf("\nSequential file demo\n\n")

	f, err := r.open("sequential.dat", "SEQUENTIAL")
	if err != nil {
		return err
	}

	for _, p := range People() {
		if err := f.PutRecord(p); err != nil {
			return err
		}
	}

	for i := 0; !f.EOF(); i++ {
		c, err := f.GetRecord()
		if err != nil {
			return err
		}
		p := c.Record()
		r.printf("At address %d we have %s who is %d years old\n", i, p.Name, p.Age)
	}

	last := f.Len() - 1
	if err := f.Seek(last); err != nil {
		return err
	}
	c, err := f.GetRecord()
	if err != nil {
		return err
	}
	r.printf("Jumped straight to address %d and found %s.\n", last, c.Record().Name)

	if err := f.Close(); err != nil {
		return err
	}

	r.printf("Sequential files support both sequential access and direct access.\n")
	return nil
}

// Random writes the people at spread out addresses and reads them back in reverse.
func (r *Runner) Random() error {
	r.printf("\nRandom file demo\n\n")

	f, err := r.open("random.dat", "RANDOM")
	if err != nil {
		return err
	}

	people := People()
	for i, p := range people {
		if err := f.Seek(i * 2); err != nil {
			return err
		}
		if err := f.PutRecord(p); err != nil {
			return err
		}
	}

	for addr := f.Len() - 1; addr >= 0; addr-- {
		if err := f.Seek(addr); err != nil {
			return err
		}
		c, err := f.GetRecord()
		if err != nil {
			return err
		}

		p, ok := c.Get()
		if !ok {
			r.printf("Address %d is empty\n", addr)
			continue
		}
		r.printf("Address %d holds %s who is %d years old\n", addr, p.Name, p.Age)
	}

	if err := f.Close(); err != nil {
		return err
	}

	r.printf("Random files are read and written at any address; each record overwrites its slot.\n")
	return nil
}
