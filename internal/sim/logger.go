package sim

import "log/slog"

// Logger is an Instrument that writes every marker to a slog.Logger at
// debug level. Combined with Recorder through a Tee it gives a live view
// of a run that is also being archived.
//
// slog.Logger is safe for concurrent use, so Logger is too.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates a marker logger on top of log.
func NewLogger(log *slog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) RegionStart() {
	l.log.Debug("region start")
}

func (l *Logger) RegionEnd() {
	l.log.Debug("region end")
}

func (l *Logger) NamedMarker(id int, label string) {
	l.log.Debug("named marker", "id", id, "label", label)
}

func (l *Logger) PhaseMarker(id int, worker int) {
	l.log.Debug("phase marker", "id", id, "worker", worker)
}

func (l *Logger) SetThreadName(name string) {
	l.log.Debug("thread label", "name", name)
}
