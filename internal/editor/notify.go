package editor

import (
	"sync"

	"go.uber.org/zap"
)

// Level of a toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is a short user-facing notification.
type Toast struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier shows toasts to the user.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// Recorder is a Notifier that keeps every toast. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
	logger *zap.Logger
}

// NewRecorder creates a Recorder. Toasts are also logged at debug level
// when logger is not nil.
func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger}
}

func (r *Recorder) Success(title, message string) { r.add(LevelSuccess, title, message) }
func (r *Recorder) Error(title, message string)   { r.add(LevelError, title, message) }

func (r *Recorder) add(level Level, title, message string) {
	r.mu.Lock()
	r.toasts = append(r.toasts, Toast{Level: level, Title: title, Message: message})
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Debug("toast",
			zap.String("level", string(level)),
			zap.String("title", title),
			zap.String("message", message),
		)
	}
}

// All returns every toast in order.
func (r *Recorder) All() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}
