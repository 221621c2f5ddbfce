package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"gopkg.in/yaml.v2"
)

// FileName is the project file written by init and read by run.
const FileName = "minilang.yml"

// DefaultEntry is the source file run when no file is given.
const DefaultEntry = "main.mini"

type Config struct {
	Package  string `yaml:"Package"`
	Entry    string `yaml:"Entry"`
	LogLevel string `yaml:"LogLevel,omitempty"`
}

func Default(name string) Config {
	return Config{
		Package:  name,
		Entry:    DefaultEntry,
		LogLevel: capnslog.WARNING.String(),
	}
}

// Validate checks that the package is named and the log level is known.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Package) == "" {
		return fmt.Errorf("config: Package must not be empty")
	}
	if c.LogLevel != "" {
		if _, err := capnslog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: LogLevel: %w", err)
		}
	}
	return nil
}

// Load reads and validates a project file. A missing file yields an error
// matching os.ErrNotExist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var doc Config
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if doc.Entry == "" {
		doc.Entry = DefaultEntry
	}
	if err := doc.Validate(); err != nil {
		return Config{}, err
	}

	return doc, nil
}

func Save(path string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}
