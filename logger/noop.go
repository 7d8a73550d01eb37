package logger

import "go.uber.org/zap"

// NewNop creates a no-op logger that discards all output. The forecasting
// CLI uses it when no logging config is supplied.
func NewNop() *DefaultLogger {
	return &DefaultLogger{logger: zap.NewNop().Sugar()}
}
