// Package logging builds the structured logger shared by the CLI and the state layer.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w.
// Level is Info, or Debug when debug is set; LOG_LEVEL overrides both.
// format "json" selects the JSON formatter, anything else plain text.
func New(w io.Writer, format string, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339,
			DisableQuote:     false,
			QuoteEmptyFields: true,
		})
	}

	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// Discard returns a logger that drops everything. Used by tests and library callers
// that do not care about logs.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
