package binfile

import "fmt"

// Mode is the access discipline of a file.
type Mode int

const (
	// ModeRandom files are addressed directly; every access needs a Seek.
	ModeRandom Mode = iota + 1
	// ModeSequential files append on write, advance on read and allow Seek.
	ModeSequential
	// ModeSerial files append on write, advance on read and never Seek.
	ModeSerial
)

var modeNames = map[Mode]string{
	ModeRandom:     "RANDOM",
	ModeSequential: "SEQUENTIAL",
	ModeSerial:     "SERIAL",
}

// ParseMode maps a discipline name to its Mode. Names are matched exactly.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}
