package config

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ingestArgs records every --key[=value] argument. Anything else is ignored.
func ingestArgs(s *store, args []string, logger *zap.Logger) {
	recorded := 0
	for _, arg := range args {
		if !strings.HasPrefix(arg, flagPrefix) {
			continue
		}
		key, value, ok := parseLine(strings.TrimPrefix(arg, flagPrefix))
		if !ok {
			continue
		}
		s.add(key, value, SourceCLI)
		recorded++
	}
	logger.Debug("ingested command-line arguments", zap.Int("entries", recorded))
}

// ingestFile records every declaration of the file at path. Missing or
// unreadable files contribute nothing.
func ingestFile(s *store, path string, logger *zap.Logger) {
	if path == "" {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Debug("skipping env file", zap.String("path", path), zap.Error(err))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	reader := bufio.NewReader(file)

	recorded := 0
	for {
		line, err := reader.ReadString('\n')
		if key, value, ok := parseLine(line); ok {
			s.add(key, value, SourceFile)
			recorded++
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debug("stopped reading env file", zap.String("path", path), zap.Error(err))
			}
			break
		}
	}

	logger.Debug("ingested env file", zap.String("path", path), zap.Int("entries", recorded))
}
