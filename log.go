package pmuevents

import "go.uber.org/zap"

// Logger receives diagnostics. It discards everything until SetLogger is
// called.
var Logger = zap.NewNop()

func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l
}
