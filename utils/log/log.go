package log

import "go.uber.org/zap"

var logger *zap.Logger

func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger = l
}

// L returns the process logger, falling back to a no-op logger so
// library code and tests never need Init.
func L() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
