package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/aerocache"
)

var _ aerocache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New wraps l with a component field.
func New(l *logrus.Logger) LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return LogrusLogger{E: l.WithField("component", "aerocache")}
}

func (l LogrusLogger) Debug(msg string, f aerocache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f aerocache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f aerocache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f aerocache.Fields) { l.with(f).Error(msg) }

// with maps an "err" field onto logrus.ErrorKey.
func (l LogrusLogger) with(f aerocache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			out[logrus.ErrorKey] = err
			continue
		}
		out[k] = v
	}
	return l.E.WithFields(out)
}
