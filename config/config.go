// Package config loads the rule file used by the rewrite and batch commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/eawag-rdm/lucparser/query"
)

const (
	// DefaultFile is looked up in the working directory.
	DefaultFile = ".lucparser.yaml"
	// EnvFile overrides the configuration path.
	EnvFile = "LUCPARSER_CONFIG"

	xdgFile = "lucparser/config.yaml"
)

// Config represents the overall configuration with a name and the ordered
// list of rules applied to every query.
type Config struct {
	Name  string       `yaml:"name"`
	Rules []query.Rule `yaml:"rules"`
}

// Default returns the configuration written by `lucparser init`.
func Default() Config {
	return Config{
		Name:  "lucparser",
		Rules: []query.Rule{},
	}
}

// Resolve picks the configuration path: an explicit path wins, then
// $LUCPARSER_CONFIG, then DefaultFile if it exists, then the XDG config
// directory. If nothing exists DefaultFile is returned.
func Resolve(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvFile); env != "" {
		return env
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	if found, err := xdg.SearchConfigFile(xdgFile); err == nil {
		return found
	}
	return DefaultFile
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

// Validate checks that every rule is named, unique and adds something.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Rules))
	var errs []error
	for i, rule := range c.Rules {
		if rule.Name == "" {
			errs = append(errs, fmt.Errorf("rule %d: missing name", i))
			continue
		}
		if seen[rule.Name] {
			errs = append(errs, fmt.Errorf("rule %q: duplicate name", rule.Name))
		}
		seen[rule.Name] = true
		if rule.Addition == "" {
			errs = append(errs, fmt.Errorf("rule %q: missing addition", rule.Name))
		}
	}
	return errors.Join(errs...)
}

// Write stores c as YAML at path, replacing any existing file.
func Write(path string, c Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
