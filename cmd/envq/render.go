package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/elechka/internal/config"
)

const maskedValue = "********"

// secretWords mask a key when one of its _-. separated segments equals them.
// secretSuffixes also catch run-together names such as accesstoken.
var (
	secretWords    = []string{"token", "secret", "password", "passwd", "key", "apikey"}
	secretSuffixes = []string{"token", "secret", "password", "passwd"}
)

type dumpRow struct {
	Key     string         `yaml:"key"`
	Value   string         `yaml:"value"`
	Source  config.Source  `yaml:"source"`
	Entries []config.Entry `yaml:"entries"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sourceStyle = map[config.Source]lipgloss.Style{
		config.SourceCLI:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		config.SourceFile: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		config.SourceEnv:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
)

func collectRows(r *config.Resolver, reveal bool) []dumpRow {
	keys := r.Keys()
	rows := make([]dumpRow, 0, len(keys))
	for _, key := range keys {
		winner, _ := r.Lookup(key)
		entries := r.Entries(key)
		if !reveal && looksSecret(key) {
			winner.Value = mask(winner.Value)
			for i := range entries {
				entries[i].Value = mask(entries[i].Value)
			}
		}
		rows = append(rows, dumpRow{
			Key:     key,
			Value:   winner.Value,
			Source:  winner.Source,
			Entries: entries,
		})
	}
	return rows
}

func looksSecret(key string) bool {
	segments := strings.FieldsFunc(strings.ToLower(key), func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for _, segment := range segments {
		if slices.Contains(secretWords, segment) {
			return true
		}
		for _, suffix := range secretSuffixes {
			if strings.HasSuffix(segment, suffix) {
				return true
			}
		}
	}
	return false
}

func mask(value string) string {
	if value == "" {
		return ""
	}
	return maskedValue
}

func writeDump(w io.Writer, rows []dumpRow, format string, styled bool) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	writeTable(w, rows, styled)
	return nil
}

func writeTable(w io.Writer, rows []dumpRow, styled bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no keys from arguments or env files")
		return
	}

	keyWidth, valueWidth := len("KEY"), len("VALUE")
	for _, row := range rows {
		keyWidth = max(keyWidth, lipgloss.Width(row.Key))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	header := fmt.Sprintf("%-*s  %-*s  %-6s  %s", keyWidth, "KEY", valueWidth, "VALUE", "SOURCE", "ENTRIES")
	if styled {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	for _, row := range rows {
		key := pad(row.Key, keyWidth)
		value := pad(row.Value, valueWidth)
		source := pad(row.Source.String(), 6)
		entries := describeEntries(row.Entries)
		if styled {
			key = keyStyle.Render(key)
			source = sourceStyle[row.Source].Render(source)
			entries = mutedStyle.Render(entries)
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n", key, value, source, entries)
	}
}

func describeEntries(entries []config.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s=%q", entry.Source, entry.Value))
	}
	return strings.Join(parts, " ")
}

func pad(text string, width int) string {
	if gap := width - lipgloss.Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

func writePaths(w io.Writer, paths []string) {
	for i, path := range paths {
		if path == "" {
			continue
		}
		status := "missing"
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			status = "found"
		}
		fmt.Fprintf(w, "%d  %s  (%s)\n", i+1, path, status)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
