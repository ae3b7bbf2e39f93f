package badgerfx

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// zapLogger routes badger output to zap. Badger reports routine compaction
// and flush progress at info level, so info is demoted to debug.
type zapLogger struct {
	logger *zap.SugaredLogger
}

func newLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{
		logger: l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Debugf implements badger.Logger.
func (l *zapLogger) Debugf(format string, a ...any) {
	l.logger.Debugf(trim(format), a...)
}

// Infof implements badger.Logger.
func (l *zapLogger) Infof(format string, a ...any) {
	l.logger.Debugf(trim(format), a...)
}

// Warningf implements badger.Logger.
func (l *zapLogger) Warningf(format string, a ...any) {
	l.logger.Warnf(trim(format), a...)
}

// Errorf implements badger.Logger.
func (l *zapLogger) Errorf(format string, a ...any) {
	l.logger.Errorf(trim(format), a...)
}

func trim(format string) string {
	return strings.TrimRight(format, "\n")
}

var _ badger.Logger = (*zapLogger)(nil)
