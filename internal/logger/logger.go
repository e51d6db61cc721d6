package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// New creates a diagnostics logger writing JSON records to stderr.
// Stdout belongs to the interactive shell; silent mode discards
// diagnostics entirely without affecting the activity journal.
func New(logLevel string, silent bool) *Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(logLevel),
		AddSource: logLevel == "debug",
	}

	var out io.Writer = os.Stderr
	if silent {
		out = io.Discard
	}

	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(out, opts)),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
	}
}

func (l *Logger) RouteAdded(network, gateway string, metric int) {
	l.Info("Route added",
		slog.String("network", network),
		slog.String("gateway", gateway),
		slog.Int("metric", metric))
}

func (l *Logger) RouteDeleted(network string, removed int) {
	l.Info("Route deleted",
		slog.String("network", network),
		slog.Int("removed", removed))
}

func (l *Logger) PacketDecision(packet, gateway string, forwarded bool) {
	l.Info("Packet decision",
		slog.String("packet", packet),
		slog.String("gateway", gateway),
		slog.Bool("forwarded", forwarded))
}

func (l *Logger) ServiceStart(version string, pid int) {
	l.Info("Simulator starting",
		slog.String("version", version),
		slog.Int("pid", pid))
}

func (l *Logger) ServiceStop() {
	l.Info("Simulator stopping")
}

func (l *Logger) TraceCompleted(file string, packets, forwarded, dropped, malformed int, durationMs int64) {
	l.Info("Trace replay completed",
		slog.String("trace_file", file),
		slog.Int("packets", packets),
		slog.Int("forwarded", forwarded),
		slog.Int("dropped", dropped),
		slog.Int("malformed", malformed),
		slog.Int64("duration_ms", durationMs))
}

func (l *Logger) ConfigLoaded(file string, preloadedRoutes int) {
	l.Info("Configuration loaded",
		slog.String("config_file", file),
		slog.Int("preloaded_routes", preloadedRoutes))
}
