package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/recfile/binfile"
	"github.com/joeandaverde/recfile/internal/storage"
)

type ShellCommand struct {
	Out io.Writer
}

func (c *ShellCommand) Help() string {
	helpText := `
Usage: recfile shell [options]

  Interactive session over string record files. Type 'help' at the prompt
  for the list of commands.

Options:

  -c, --config=""     Configuration file
  -d, --dir=""        Data directory
      --log-level=""  Log level
      --memory        Keep files in memory instead of the data directory
`

	return strings.TrimSpace(helpText)
}

func (c *ShellCommand) Synopsis() string {
	return "Opens an interactive record file shell"
}

func (c *ShellCommand) Run(args []string) int {
	var (
		common commonFlags
		memory bool
	)

	fs := newFlagSet("shell", os.Stderr)
	common.register(fs)
	fs.BoolVar(&memory, "memory", false, "keep files in memory")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, logger, err := common.load()
	if err != nil {
		return fail(os.Stderr, "%s", err)
	}

	var src binfile.Source = storage.NewDiskSource(cfg.DataDir)
	if memory {
		src = storage.NewMemorySource()
	}

	sess := &session{
		out:      c.Out,
		source:   src,
		log:      logger,
		capacity: cfg.Capacity,
	}

	if err := sess.repl(); err != nil {
		logger.WithError(err).Error("shell failed")
		return 1
	}

	return 0
}

var errQuit = errors.New("quit")

// defaultCapacity bounds random files opened with no capacity argument or
// config value.
const defaultCapacity = 1 << 20

// session holds at most one open file between shell commands.
type session struct {
	out      io.Writer
	source   binfile.Source
	log      logrus.FieldLogger
	capacity *int

	file binfile.File[string]
}

var shellCommands = []string{"open", "seek", "put", "get", "eof", "len", "close", "help", "quit"}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".recfile_history")
}

func (s *session) repl() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string
		for _, c := range shellCommands {
			if strings.HasPrefix(c, strings.ToLower(prefix)) {
				out = append(out, c)
			}
		}
		return out
	})

	history := historyFile()
	if f, err := os.Open(history); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if history == "" {
			return
		}
		if f, err := os.Create(history); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	s.printf("recfile shell. Type 'help' for commands.\n")

	for {
		input, err := line.Prompt(s.prompt())
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if err := s.execute(input); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			s.printf("error: %v\n", err)
		}
	}

	return s.closeOpen()
}

func (s *session) prompt() string {
	if s.file == nil {
		return "recfile> "
	}
	return fmt.Sprintf("recfile[%s %s @%d]> ", s.file.Filename(), s.file.Mode(), s.file.Pointer())
}

func (s *session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// execute runs one shell line. It returns errQuit when the user asks to leave.
func (s *session) execute(input string) error {
	args, err := shellquote.Split(input)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if len(args) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		s.printHelp()
		return nil
	case "open":
		return s.cmdOpen(args)
	}

	if s.file == nil {
		return errors.New("no file open, use: open NAME MODE [CAPACITY]")
	}

	switch cmd {
	case "seek":
		return s.cmdSeek(args)
	case "put":
		if len(args) != 1 {
			return errors.New("usage: put TEXT (quote text containing spaces)")
		}
		return s.file.PutRecord(args[0])
	case "get":
		c, err := s.file.GetRecord()
		if err != nil {
			return err
		}
		if v, ok := c.Get(); ok {
			s.printf("%q\n", v)
		} else {
			s.printf("<empty>\n")
		}
		return nil
	case "eof":
		s.printf("%t\n", s.file.EOF())
		return nil
	case "len":
		s.printf("%d\n", s.file.Len())
		return nil
	case "close":
		return s.closeOpen()
	default:
		return fmt.Errorf("unknown command %q (type 'help' for commands)", cmd)
	}
}

func (s *session) cmdOpen(args []string) error {
	if s.file != nil {
		return fmt.Errorf("%s is open, close it first", s.file.Filename())
	}
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: open NAME MODE [CAPACITY]")
	}

	opts := []binfile.Option{
		binfile.WithSource(s.source),
		binfile.WithLogger(s.log),
		binfile.WithCodec[string](binfile.StringCodec{}),
	}

	switch {
	case len(args) == 3:
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("capacity: %w", err)
		}
		opts = append(opts, binfile.WithCapacity(n))
	case s.capacity != nil:
		opts = append(opts, binfile.WithCapacity(*s.capacity))
	default:
		opts = append(opts, binfile.WithCapacity(defaultCapacity))
	}

	f, err := binfile.Open[string](args[0], strings.ToUpper(args[1]), opts...)
	if err != nil {
		return err
	}

	s.file = f
	s.printf("opened %s (%s) with %d slots\n", f.Filename(), f.Mode(), f.Len())
	return nil
}

func (s *session) cmdSeek(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: seek ADDRESS")
	}

	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	return s.file.Seek(addr)
}

func (s *session) closeOpen() error {
	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		return err
	}

	s.printf("closed %s\n", s.file.Filename())
	s.file = nil
	return nil
}

func (s *session) printHelp() {
	s.printf(`Commands:
  open NAME MODE [CAPACITY]  open a file; MODE is random, sequential or serial
  seek ADDRESS               move the pointer
  put TEXT                   store a record
  get                        read the record at the pointer
  eof                        report whether the pointer is past the end
  len                        number of slots
  close                      write the file back and close it
  quit                       close any open file and leave
`)
}
