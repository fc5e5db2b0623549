package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/joeandaverde/recfile/internal/config"
)

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	dataDir    string
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", "", "configuration file (.yaml or .jsonc)")
	fs.StringVarP(&c.dataDir, "dir", "d", "", "data directory, overrides the config file")
	fs.StringVar(&c.logLevel, "log-level", "", "log level, overrides the config file")
}

// load reads the config file and applies flag overrides.
func (c *commonFlags) load() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, logger, nil
}

func newFlagSet(name string, errOut io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	return fs
}

func fail(w io.Writer, format string, args ...interface{}) int {
	_, _ = fmt.Fprintf(w, "Error: "+format+"\n", args...)
	return 1
}
