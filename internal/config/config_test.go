package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Default(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("")
	assert.NoError(err)
	assert.Equal(Default(), cfg)
	assert.Nil(cfg.Capacity)
}

func TestLoad_YAML(t *testing.T) {
	assert := require.New(t)
	path := filepath.Join(t.TempDir(), "recfile.yaml")
	writeFile(t, path, "data_directory: /var/lib/recfile\nlog_level: debug\ncapacity: 16\n")

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("/var/lib/recfile", cfg.DataDir)
	assert.Equal("debug", cfg.LogLevel)
	assert.NotNil(cfg.Capacity)
	assert.Equal(16, *cfg.Capacity)
}

func TestLoad_YAMLPartialKeepsDefaults(t *testing.T) {
	assert := require.New(t)
	path := filepath.Join(t.TempDir(), "recfile.yml")
	writeFile(t, path, "log_level: warn\n")

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(DefaultDataDir, cfg.DataDir)
	assert.Equal("warn", cfg.LogLevel)
}

func TestLoad_YAMLUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recfile.yaml")
	writeFile(t, path, "data_dir: oops\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_JSONWithComments(t *testing.T) {
	assert := require.New(t)
	path := filepath.Join(t.TempDir(), "recfile.jsonc")
	writeFile(t, path, `{
		// where the .dat files live
		"data_directory": "records",
		"capacity": 3,
	}`)

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal("records", cfg.DataDir)
	assert.Equal(DefaultLogLevel, cfg.LogLevel)
	assert.Equal(3, *cfg.Capacity)
}

func TestLoad_EmptyJSON(t *testing.T) {
	assert := require.New(t)
	path := filepath.Join(t.TempDir(), "recfile.json")
	writeFile(t, path, "  \n")

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	negative := -1

	cases := map[string]Config{
		"empty data dir":    {DataDir: "", LogLevel: "info"},
		"bad level":         {DataDir: ".", LogLevel: "loud"},
		"negative capacity": {DataDir: ".", LogLevel: "info", Capacity: &negative},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, cfg.Validate())
		})
	}
}

func TestParseYAML_BadLevel(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("log_level: shouting\n"))
	require.Error(t, err)
}

func TestConfig_Logger(t *testing.T) {
	assert := require.New(t)

	var out strings.Builder
	cfg := Default()
	cfg.LogLevel = "warn"

	logger, err := cfg.Logger(&out)
	assert.NoError(err)
	assert.Equal(logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(out.String(), "hidden")
	assert.Contains(out.String(), "shown")
}
