package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	oldOut, oldVerbose := LogOutput, Verbose
	defer func() { LogOutput, Verbose = oldOut, oldVerbose }()

	var buf bytes.Buffer
	LogOutput = &buf
	Verbose = true
	log := NewLogger("server")
	log.Info().Int("layers", 3).Msg("network ready")
	require.Contains(t, buf.String(), "network ready")
	require.Contains(t, buf.String(), "component=server")
	require.Contains(t, buf.String(), "layers=3")

	buf.Reset()
	Verbose = false
	log = NewLogger("server")
	log.Info().Msg("hidden")
	require.Zero(t, buf.Len())
}
