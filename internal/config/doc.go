// Package config resolves named configuration values from three sources with a
// fixed precedence: command-line arguments > .env files > process environment >
// caller default. Arguments and files are ingested once at construction into an
// append-only store; the process environment is consulted live on every lookup.
//
// The package also derives the typed bot Settings from the resolved keys.
package config
