package config

import "strings"

const envFileName = ".env"

// executablePath is the platform backend; replaced in tests.
var executablePath = platformExecutablePath

// DefaultPaths returns the default .env candidates: the working directory
// first, then the directory holding the running binary.
func DefaultPaths() []string {
	return []string{
		CurrentDirectoryPath(envFileName),
		ExecutableDirectoryPath(envFileName),
	}
}

// CurrentDirectoryPath returns relative unchanged; the OS resolves it against
// the working directory when the file is opened.
func CurrentDirectoryPath(relative string) string {
	return relative
}

// ExecutableDirectoryPath joins relative onto the directory of the running
// binary, or returns relative when that directory cannot be determined.
func ExecutableDirectoryPath(relative string) string {
	dir, ok := ResolveExecutableDirectory()
	if !ok {
		return relative
	}
	return dir + relative
}

// ResolveExecutableDirectory returns the directory of the running binary,
// including its trailing separator.
func ResolveExecutableDirectory() (string, bool) {
	path, err := executablePath()
	if err != nil || path == "" {
		return "", false
	}

	idx := strings.LastIndexAny(path, `/\`)
	if idx < 0 {
		return "", false
	}
	return path[:idx+1], true
}
