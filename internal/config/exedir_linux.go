//go:build linux

package config

import (
	"os"
	"strings"
)

// deletedSuffix is appended by the kernel when the binary was replaced or
// removed while running.
const deletedSuffix = " (deleted)"

func platformExecutablePath() (string, error) {
	link, err := os.Readlink("/proc/self/exe")
	if err != nil {
		return "", err
	}
	return procExePath(link), nil
}

func procExePath(link string) string {
	return strings.TrimSuffix(link, deletedSuffix)
}
