package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the root logger from a level name and a format ("text" or "json").
// An unknown level falls back to info.
func New(level, format string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		l.Warnf("unknown LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}

// Component returns an entry tagged with the component name
func Component(l *logrus.Logger, name string) *logrus.Entry {
	return logrus.NewEntry(l).WithField("component", name)
}
