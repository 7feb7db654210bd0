//go:build !linux

package config

import "os"

func platformExecutablePath() (string, error) {
	return os.Executable()
}
