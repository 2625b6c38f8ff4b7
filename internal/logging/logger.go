// ABOUTME: Logrus setup for the ndl CLI, HTTP server, and MCP server.
// ABOUTME: Logs go to stderr, optionally to a rotated file via lumberjack, never to stdout.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFileName   string
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures a new logger. The returned closer releases the log file.
// stdout carries command output and the MCP stdio transport, so it is never a sink.
func Setup(params SetupParams) (*logrus.Logger, io.Closer) {
	log := logrus.New()
	log.SetLevel(GetLevel(params.LogLevel))
	if params.LogFormatJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if params.LogFileName == "" {
		log.SetOutput(os.Stderr)
		return log, NewCombinedWriter()
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   10, // megabytes
		MaxAge:    30, // days
		LocalTime: false,
		Compress:  true,
	}

	var out *CombinedWriter
	if params.LogToStderr {
		out = NewCombinedWriter(os.Stderr, lumberJackLogger)
	} else {
		out = NewCombinedWriter(lumberJackLogger)
	}
	log.SetOutput(out)
	return log, out
}

// GetLevel maps a level name to a logrus level. Unknown names mean info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard returns a logger that drops everything, for tests and quiet commands.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
