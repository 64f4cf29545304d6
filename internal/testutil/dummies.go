// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/tarekm/adsift/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns how many warnings were recorded.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── ImageClassifier ───────────────────────────────────────────────────

// FixedClassifier implements moderation.ImageClassifier deterministically.
// FlagRefs marks references that should be flagged; FailRefs forces an error
// for a reference. Calls are recorded for assertions.
type FixedClassifier struct {
	FlagRefs map[string]bool
	FailRefs map[string]bool

	mu    sync.Mutex
	Calls []string
}

func (c *FixedClassifier) Flagged(_ context.Context, ref string) (bool, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, ref)
	c.mu.Unlock()
	if c.FailRefs[ref] {
		return false, errors.New("classifier unavailable")
	}
	return c.FlagRefs[ref], nil
}

// CallCount returns how many classifications were requested.
func (c *FixedClassifier) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}
