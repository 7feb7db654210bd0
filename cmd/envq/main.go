package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/elechka/internal/config"
	"github.com/eugenenazirov/elechka/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("envq", "Inspect how elechka resolves configuration from arguments, .env files and the environment")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	files := app.Flag("file", "Env file to read (repeatable, replaces the defaults)").Short('f').Strings()
	noDefaults := app.Flag("no-default-files", "Do not read ./.env and <exe-dir>/.env").Bool()
	defines := app.Flag("define", "Simulated command-line entry KEY[=VALUE] (repeatable)").Short('D').Strings()
	logLevel := app.Flag("log-level", "Diagnostics level written to stderr").Default("warn").Enum("debug", "info", "warn", "error")

	getCmd := app.Command("get", "Print the resolved value of a key")
	getKey := getCmd.Arg("key", "Key to resolve").Required().String()
	getDefault := getCmd.Flag("default", "Value printed when the key is not found").String()
	getSource := getCmd.Flag("source", "Restrict the lookup to one source").Default("any").Enum(config.SourceNames()...)

	hasCmd := app.Command("has", "Report whether a key is present; exits 1 when it is not")
	hasKey := hasCmd.Arg("key", "Key to check").Required().String()
	hasSource := hasCmd.Flag("source", "Restrict the check to one source").Default("any").Enum(config.SourceNames()...)

	dumpCmd := app.Command("dump", "List every stored key with its winning value and all entries")
	dumpFormat := dumpCmd.Flag("format", "Output format").Default("table").Enum("table", "yaml")
	dumpReveal := dumpCmd.Flag("reveal", "Show secret-looking values unmasked").Bool()

	pathsCmd := app.Command("paths", "List the env files consulted, in order")

	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "envq: %v\n", err)
		return 2
	}

	logger, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintf(stderr, "envq: %v\n", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()

	resolver := config.New(simulatedArgs(*defines), candidatePaths(*files, *noDefaults), config.WithLogger(logger))

	switch command {
	case getCmd.FullCommand():
		src, _ := config.ParseSource(*getSource)
		fmt.Fprintln(stdout, resolver.Get(*getKey, *getDefault, src))
	case hasCmd.FullCommand():
		src, _ := config.ParseSource(*hasSource)
		present := resolver.Has(*hasKey, src)
		fmt.Fprintln(stdout, present)
		if !present {
			return 1
		}
	case dumpCmd.FullCommand():
		rows := collectRows(resolver, *dumpReveal)
		if err := writeDump(stdout, rows, *dumpFormat, isTerminal(stdout)); err != nil {
			logger.Error("dump failed", zap.Error(err))
			return 1
		}
	case pathsCmd.FullCommand():
		writePaths(stdout, resolver.Paths())
	}
	return 0
}

// simulatedArgs turns KEY=VALUE definitions into --KEY=VALUE arguments.
func simulatedArgs(defines []string) []string {
	args := make([]string, 0, len(defines))
	for _, def := range defines {
		args = append(args, "--"+strings.TrimPrefix(def, "--"))
	}
	return args
}

func candidatePaths(files []string, noDefaults bool) []string {
	if len(files) > 0 {
		return files
	}
	if noDefaults {
		return []string{""}
	}
	return nil
}
