package mocks

import (
	"fmt"
	"sync"

	"github.com/user/camview/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records formatted
// messages per level for assertions. Component loggers share the parent's
// record.
type Logger struct {
	mu sync.Mutex

	Debugs []string
	Infos  []string
	Warns  []string
	Errors []string
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, fmt.Sprintf(msg, args...))
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, fmt.Sprintf(msg, args...))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, fmt.Sprintf(msg, args...))
}

func (l *Logger) WithComponent(component string) ports.Logger {
	return l
}

// DebugCount returns how many recorded debug messages equal msg.
func (l *Logger) DebugCount(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.Debugs {
		if m == msg {
			n++
		}
	}
	return n
}

var _ ports.Logger = (*Logger)(nil)
