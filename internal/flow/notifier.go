// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package flow

import (
	"fmt"
	"io"
	"sync"

	"github.com/tomtom215/geosnap/internal/logging"
)

// Notifier shows the user the outcome of an action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Level is the kind of a notification.
type Level string

// Notification levels.
const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

// Success logs msg at info.
func (LogNotifier) Success(msg string) {
	logging.Info().Str("notification", string(LevelSuccess)).Msg(msg)
}

// Error logs msg at warn.
func (LogNotifier) Error(msg string) {
	logging.Warn().Str("notification", string(LevelError)).Msg(msg)
}

// WriterNotifier prints notifications as single lines, for terminals.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier prints to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Success prints msg with a check mark.
func (n *WriterNotifier) Success(msg string) { n.print("✓", msg) }

// Error prints msg with a cross.
func (n *WriterNotifier) Error(msg string) { n.print("✗", msg) }

func (n *WriterNotifier) print(mark, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", mark, msg)
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Success records a success message.
func (r *Recorder) Success(msg string) { r.add(LevelSuccess, msg) }

// Error records an error message.
func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Level: level, Message: msg})
}

// All returns a copy of the recorded notifications in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Scoped wraps n so that nothing is shown once scope is closed.
func Scoped(scope *Scope, n Notifier) Notifier {
	return scopedNotifier{scope: scope, n: n}
}

type scopedNotifier struct {
	scope *Scope
	n     Notifier
}

func (s scopedNotifier) Success(msg string) {
	s.scope.Apply(func() { s.n.Success(msg) })
}

func (s scopedNotifier) Error(msg string) {
	s.scope.Apply(func() { s.n.Error(msg) })
}
