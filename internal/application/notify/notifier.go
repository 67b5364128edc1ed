// Package notify carries user-facing notifications from services to the
// front-end. The terminal is headless, so notifications accumulate in a feed
// the UI polls and drains.
package notify

import "time"

// Level is the severity of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one user-visible message
type Notification struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier is the port services emit user-visible messages through
type Notifier interface {
	Success(message string)
	Warning(message string)
	Error(message string)
}
