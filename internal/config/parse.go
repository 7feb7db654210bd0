package config

import "strings"

const (
	whitespace  = " \t\r\n"
	commentMark = '#'
	flagPrefix  = "--"
)

// parseLine applies the .env line grammar. It reports ok=false for blank
// lines, comments and lines whose key trims to nothing.
func parseLine(line string) (key, value string, ok bool) {
	trimmed := strings.Trim(line, whitespace)
	if trimmed == "" || trimmed[0] == commentMark {
		return "", "", false
	}

	rawKey, rawValue, hasValue := strings.Cut(trimmed, "=")
	key = strings.Trim(rawKey, whitespace)
	if key == "" {
		return "", "", false
	}
	if !hasValue {
		return key, "", true
	}
	return key, unquote(rawValue), true
}

// unquote trims the value and strips one matching layer of single or double quotes.
func unquote(raw string) string {
	cleaned := strings.Trim(raw, whitespace)
	if len(cleaned) < 2 {
		return cleaned
	}

	first, last := cleaned[0], cleaned[len(cleaned)-1]
	if first == last && (first == '"' || first == '\'') {
		return cleaned[1 : len(cleaned)-1]
	}
	return cleaned
}
