//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build both binaries
var Default = Build

var binaries = map[string]string{
	"elechka": "./cmd/elechka",
	"envq":    "./cmd/envq",
}

// Build compiles the bot and the envq inspector into bin/
func Build() error {
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("create bin dir: %w", err)
	}
	for name, pkg := range binaries {
		if err := sh.RunV("go", "build", "-o", "bin/"+name, pkg); err != nil {
			return fmt.Errorf("build %s: %w", name, err)
		}
	}
	return nil
}

// Test runs the unit and integration tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// QA runs vet and tests
func QA() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}
