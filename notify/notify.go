// Package notify delivers short status messages from editor commands to
// whatever surface hosts the session.
package notify

import (
	"context"
	"log/slog"
)

// Severity classifies a notification.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives status messages emitted by editor commands.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(severity Severity, message string)

func (f Func) Notify(severity Severity, message string) { f(severity, message) }

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(severity Severity, message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if severity == Error {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, message, "severity", severity.String())
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Notify(Severity, string) {}
