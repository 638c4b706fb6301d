package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp resets viper and moves into an empty temp dir for the test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
	return tmpDir
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	config, err := LoadConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, Default(), withEmptyExclude(config))
}

// withEmptyExclude normalizes the defaulted empty exclude list for comparison.
func withEmptyExclude(c *Config) *Config {
	if len(c.Exclude) == 0 {
		c.Exclude = nil
	}
	return c
}

func TestLoadConfigFromJSON(t *testing.T) {
	tmpDir := chdirTemp(t)

	configData := map[string]any{
		"root":             "/essays",
		"include":          []string{"class-a/**/*.md"},
		"exclude":          []string{"**/drafts/**"},
		"format":           "json",
		"output":           "report.json",
		"concurrency":      8,
		"topic":            "Climate change",
		"minContentLength": 80,
		"seed":             42,
		"failUnder":        60,
	}
	data, err := json.Marshal(configData)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".essayscorerc.json"), data, 0o644))

	config, err := LoadConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "/essays", config.Root)
	assert.Equal(t, []string{"class-a/**/*.md"}, config.Include)
	assert.Equal(t, []string{"**/drafts/**"}, config.Exclude)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "report.json", config.Output)
	assert.Equal(t, 8, config.Concurrency)
	assert.Equal(t, "Climate change", config.Topic)
	assert.Equal(t, 80, config.MinContentLength)
	assert.Equal(t, 100, config.DetailedMinContentLength)
	assert.Equal(t, uint64(42), config.Seed)
	assert.Equal(t, 60, config.FailUnder)
}

func TestLoadConfigFromYAML(t *testing.T) {
	tmpDir := chdirTemp(t)

	yamlContent := "format: markdown\nconcurrency: 2\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".essayscorerc.yaml"), []byte(yamlContent), 0o644))

	config, err := LoadConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, "markdown", config.Format)
	assert.Equal(t, 2, config.Concurrency)
	assert.True(t, config.Verbose)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	tmpDir := chdirTemp(t)
	path := filepath.Join(tmpDir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("topic: Oceans\n"), 0o644))

	config, err := LoadConfig("", path)
	require.NoError(t, err)
	assert.Equal(t, "Oceans", config.Topic)

	viper.Reset()
	_, err = LoadConfig("", filepath.Join(tmpDir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	tmpDir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".essayscorerc.json"), []byte("{not json"), 0o644))

	_, err := LoadConfig("", "")
	assert.Error(t, err)
}

func TestLoadConfigEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ESSAYSCORE_FORMAT", "json")
	t.Setenv("ESSAYSCORE_CONCURRENCY", "3")

	config, err := LoadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, 3, config.Concurrency)
}

func TestLoadConfigRootOverride(t *testing.T) {
	chdirTemp(t)

	config, err := LoadConfig("/override", "")
	require.NoError(t, err)
	assert.Equal(t, "/override", config.Root)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Format = "xml" }, "invalid format"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
		{"zero min length", func(c *Config) { c.MinContentLength = 0 }, "minContentLength"},
		{"zero detailed min length", func(c *Config) { c.DetailedMinContentLength = 0 }, "detailedMinContentLength"},
		{"fail under too high", func(c *Config) { c.FailUnder = 101 }, "failUnder"},
		{"fail under negative", func(c *Config) { c.FailUnder = -1 }, "failUnder"},
		{"quiet and verbose", func(c *Config) { c.Quiet, c.Verbose = true, true }, "quiet and verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", ".essayscorerc.json")

	c := Default()
	c.Topic = "Space"
	require.NoError(t, SaveConfig(c, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, *c, loaded)
}
