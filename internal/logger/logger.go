package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger *log.Logger
	out    io.Writer
	level  string
	json   bool
}

// New creates a Logger writing to stdout
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level, "text")
}

// NewWithWriter creates a Logger writing to w. Format "json" emits one JSON
// object per line; anything else uses the "[LEVEL] message" text form.
func NewWithWriter(w io.Writer, level, format string) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		out:    w,
		level:  strings.ToLower(level),
		json:   strings.EqualFold(format, "json"),
	}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return NewWithWriter(io.Discard, "error", "text")
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) write(level, msg string, args []interface{}) {
	if !l.shouldLog(level) {
		return
	}
	text := fmt.Sprintf(msg, args...)
	if !l.json {
		l.logger.Printf("[%s] %s", strings.ToUpper(level), text)
		return
	}

	line, err := json.Marshal(struct {
		Time  string `json:"time"`
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}{time.Now().Format(time.RFC3339), level, text})
	if err != nil {
		l.logger.Printf("[ERROR] marshal log line: %v", err)
		return
	}
	fmt.Fprintln(l.out, string(line))
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write("debug", msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write("info", msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write("warn", msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write("error", msg, args)
}
