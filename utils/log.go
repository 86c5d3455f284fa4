package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogOutput receives log lines. It defaults to os.Stderr because the server
// and client speak the host protocol on stdout.
var LogOutput io.Writer = os.Stderr

// NewLogger returns a console logger tagged with component, or a no-op
// logger when Verbose is false.
func NewLogger(component string) zerolog.Logger {
	if !Verbose {
		return zerolog.Nop()
	}
	w := zerolog.ConsoleWriter{Out: LogOutput, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}
