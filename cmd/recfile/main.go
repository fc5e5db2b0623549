package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"
)

func main() {
	args := os.Args[1:]

	commands := map[string]cli.CommandFactory{
		"demo": func() (cli.Command, error) {
			return &DemoCommand{Out: os.Stdout}, nil
		},
		"dump": func() (cli.Command, error) {
			return &DumpCommand{Out: os.Stdout}, nil
		},
		"shell": func() (cli.Command, error) {
			return &ShellCommand{Out: os.Stdout}, nil
		},
	}

	recCLI := &cli.CLI{
		Name:     "recfile",
		Args:     args,
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("recfile"),
	}

	exitCode, err := recCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}
