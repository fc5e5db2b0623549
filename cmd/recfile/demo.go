package main

import (
	"io"
	"os"
	"strings"

	"github.com/joeandaverde/recfile/internal/demo"
	"github.com/joeandaverde/recfile/internal/storage"
)

type DemoCommand struct {
	Out io.Writer
}

func (c *DemoCommand) Help() string {
	helpText := `
Usage: recfile demo [options]

  Writes serial.dat, sequential.dat and random.dat in the data directory,
  replacing any earlier copies, and prints what each discipline reads back.

Options:

  -c, --config=""     Configuration file
  -d, --dir=""        Data directory
      --log-level=""  Log level
`

	return strings.TrimSpace(helpText)
}

func (c *DemoCommand) Synopsis() string {
	return "Runs the serial, sequential and random file demo"
}

func (c *DemoCommand) Run(args []string) int {
	var common commonFlags

	fs := newFlagSet("demo", os.Stderr)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, logger, err := common.load()
	if err != nil {
		return fail(os.Stderr, "%s", err)
	}

	runner := &demo.Runner{
		Out:    c.Out,
		Source: storage.NewDiskSource(cfg.DataDir),
		Log:    logger,
	}

	if err := runner.Run(); err != nil {
		logger.WithError(err).Error("demo failed")
		return 1
	}

	return 0
}
