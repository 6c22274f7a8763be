package executor

import "log/slog"

// LoggingObserver is a simple observer that logs all events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Debug("query_lifecycle",
		"event", event.Type,
		"exec_id", event.ExecID,
		"stage", event.Stage,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
