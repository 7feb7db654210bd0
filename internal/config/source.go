package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSource is returned by ParseSource for names that do not match a Source.
var ErrUnknownSource = errors.New("unknown configuration source")

// Source identifies where a configuration value came from.
type Source int

const (
	// SourceAny is a query wildcard; it never tags a stored entry.
	SourceAny Source = iota
	// SourceCLI marks values taken from --key=value arguments.
	SourceCLI
	// SourceFile marks values read from a .env file.
	SourceFile
	// SourceEnv marks values read from the live process environment.
	SourceEnv
)

var sourceNames = map[Source]string{
	SourceAny:  "any",
	SourceCLI:  "cli",
	SourceFile: "file",
	SourceEnv:  "env",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// SourceNames lists the accepted source names in precedence order, wildcard first.
func SourceNames() []string {
	return []string{"any", "cli", "file", "env"}
}

// ParseSource maps a name such as "cli" back to its Source.
func ParseSource(name string) (Source, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for src, candidate := range sourceNames {
		if candidate == normalized {
			return src, nil
		}
	}
	return SourceAny, fmt.Errorf("%w: %q", ErrUnknownSource, name)
}

// Entry is one recorded value for a key together with its origin.
type Entry struct {
	Value  string `yaml:"value"`
	Source Source `yaml:"source"`
}

// MarshalYAML renders the source by name.
func (s Source) MarshalYAML() (any, error) {
	return s.String(), nil
}
