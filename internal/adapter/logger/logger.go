package logger

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Logger is the structured logging surface shared by every service
// mode. Entries are written as one JSON object per line on stdout.
type Logger interface {
	Info(action, message string, details map[string]interface{})
	Debug(action, message string, details map[string]interface{})
	Error(action, message string, details map[string]interface{}, err error)
}

type entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Service   string                 `json:"service"`
	Hostname  string                 `json:"hostname"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

type jsonLogger struct {
	service  string
	hostname string
	mu       sync.Mutex
	enc      *json.Encoder
}

func New(service string) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
		enc:      json.NewEncoder(os.Stdout),
	}
}

func (l *jsonLogger) Info(action, message string, details map[string]interface{}) {
	l.write("INFO", action, message, details, nil)
}

func (l *jsonLogger) Debug(action, message string, details map[string]interface{}) {
	l.write("DEBUG", action, message, details, nil)
}

func (l *jsonLogger) Error(action, message string, details map[string]interface{}, err error) {
	l.write("ERROR", action, message, details, err)
}

func (l *jsonLogger) write(level, action, message string, details map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		Action:    action,
		Message:   message,
		Details:   details,
	}
	if err != nil {
		e.Error = err.Error()
	}

	l.enc.Encode(e)
}
