package textfilter

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggerMu sync.RWMutex
	logger   logrus.FieldLogger
)

// SetLogger installs the process-wide logger used by the filter core.
// Passing nil restores the lazily created default.
func SetLogger(l logrus.FieldLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// Logger returns the process-wide logger. When none has been installed it
// creates one that writes to standard error.
func Logger() logrus.FieldLogger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		std := logrus.New()
		std.SetOutput(os.Stderr)
		logger = std
	}
	return logger
}
