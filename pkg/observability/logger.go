package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogLevel keeps the console output limited to the guard summary
const DefaultLogLevel = "warn"

// NewLogger creates a text logger at the named level. Unknown names fall back
// to info; a nil writer means stderr.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
