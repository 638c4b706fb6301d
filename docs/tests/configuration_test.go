package docs_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dotcommander/essayscore/internal/config"
)

func readGuide(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("..", "guides", "configuration.md"))
	if err != nil {
		t.Fatalf("Failed to read configuration.md: %v", err)
	}
	return string(content)
}

// configKeys returns the mapstructure key of every Config field.
func configKeys() []string {
	var keys []string
	typ := reflect.TypeOf(config.Config{})
	for i := range typ.NumField() {
		if key := typ.Field(i).Tag.Get("mapstructure"); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func TestConfigurationGuide_ConfigFileFormatsListed(t *testing.T) {
	contentStr := readGuide(t)

	for _, name := range config.DefaultConfigFiles {
		if !strings.Contains(contentStr, name) {
			t.Errorf("Missing %s format in documentation", name)
		}
	}

	if !strings.Contains(contentStr, "searched in order") {
		t.Error("Missing information about config file search order")
	}
}

func TestConfigurationGuide_EveryKeyDocumented(t *testing.T) {
	contentStr := readGuide(t)

	keys := configKeys()
	if len(keys) == 0 {
		t.Fatal("Config has no mapstructure keys")
	}
	for _, key := range keys {
		if !strings.Contains(contentStr, "| `"+key+"` |") {
			t.Errorf("Key %s missing from the Keys table", key)
		}
		if !strings.Contains(contentStr, "\n"+key+":") {
			t.Errorf("Key %s missing from the YAML example", key)
		}
	}
}

func TestConfigurationGuide_EnvironmentVariablesDocumented(t *testing.T) {
	contentStr := readGuide(t)

	if !strings.Contains(contentStr, "## Environment Variables") {
		t.Error("Missing Environment Variables section")
	}
	if !strings.Contains(contentStr, "export "+config.EnvPrefix+"_") {
		t.Error("Missing export command examples for environment variables")
	}

	for _, envVar := range []string{"ESSAYSCORE_ROOT", "ESSAYSCORE_FORMAT", "ESSAYSCORE_TOPIC", "ESSAYSCORE_FAILUNDER"} {
		if !strings.Contains(contentStr, envVar) {
			t.Errorf("Missing environment variable documentation: %s", envVar)
		}
	}

	if !strings.Contains(contentStr, "Priority Order") {
		t.Error("Missing Priority Order section")
	}
	for _, source := range []string{"Default values", "Configuration file", "Environment variables", "Command-line flags"} {
		if !strings.Contains(contentStr, source) {
			t.Errorf("Missing priority order source: %s", source)
		}
	}
}
