package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joeandaverde/recfile/internal/storage"
)

type DumpCommand struct {
	Out io.Writer
}

func (c *DumpCommand) Help() string {
	helpText := `
Usage: recfile dump [options] FILENAME

  Prints every slot of a record file: its address and either "empty" or the
  payload size. Works for any record type.

Options:

  -c, --config=""     Configuration file
  -d, --dir=""        Data directory
      --log-level=""  Log level
      --text          Also print payloads as quoted text
`

	return strings.TrimSpace(helpText)
}

func (c *DumpCommand) Synopsis() string {
	return "Prints the slots of a record file"
}

func (c *DumpCommand) Run(args []string) int {
	var (
		common commonFlags
		text   bool
	)

	fs := newFlagSet("dump", os.Stderr)
	common.register(fs)
	fs.BoolVar(&text, "text", false, "print payloads as quoted text")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		return fail(os.Stderr, "dump takes exactly one filename")
	}

	cfg, logger, err := common.load()
	if err != nil {
		return fail(os.Stderr, "%s", err)
	}

	name := fs.Arg(0)
	src := storage.NewDiskSource(cfg.DataDir)

	data, err := src.Load(name)
	if err != nil {
		return fail(os.Stderr, "%s", err)
	}

	slots, err := storage.Decode(data)
	if err != nil {
		logger.WithError(err).WithField("file", src.Path(name)).Error("unreadable record file")
		return 1
	}

	writeSlots(c.Out, slots, text)
	return 0
}

func writeSlots(w io.Writer, slots []storage.Slot, text bool) {
	_, _ = fmt.Fprintf(w, "%d slots\n", len(slots))

	for i, s := range slots {
		switch {
		case !s.Present:
			_, _ = fmt.Fprintf(w, "%d\tempty\n", i)
		case text:
			_, _ = fmt.Fprintf(w, "%d\t%d bytes\t%q\n", i, len(s.Data), s.Data)
		default:
			_, _ = fmt.Fprintf(w, "%d\t%d bytes\n", i, len(s.Data))
		}
	}
}
