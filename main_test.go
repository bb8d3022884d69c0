package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTransportLoggerKeepsStdoutCleanInStdioMode(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	base := zerolog.New(&stdout)

	logger := transportLogger(base, true, &stderr)
	logger.Info().Int("products", 12).Msg("catalog loaded")

	if stdout.Len() != 0 {
		t.Fatalf("stdio mode wrote to stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "catalog loaded") {
		t.Fatalf("stderr missing log line: %q", stderr.String())
	}
}

func TestTransportLoggerHTTPModeUnchanged(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	base := zerolog.New(&stdout)

	logger := transportLogger(base, false, &stderr)
	logger.Info().Msg("http server listening")

	if stderr.Len() != 0 {
		t.Fatalf("http mode wrote to stderr: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "http server listening") {
		t.Fatalf("stdout missing log line: %q", stdout.String())
	}
}
