// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package log

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📣 Sink receives human-readable progress messages
type Sink interface {
	Write(ctx context.Context, message string)
}

// 🏷️ HeaderSink is a Sink that renders section headers apart from events
type HeaderSink interface {
	Sink
	Header(ctx context.Context, message string)
}

// WriteHeader sends a section header to sink, as a plain message when the
// sink has no header rendering of its own
func WriteHeader(ctx context.Context, sink Sink, message string) {
	if hs, ok := sink.(HeaderSink); ok {
		hs.Header(ctx, message)
		return
	}
	sink.Write(ctx, message)
}

// Created formats the event emitted after a file is written
func Created(displayPath string) string {
	return fmt.Sprintf(`Created "%s"`, displayPath)
}

// Removed formats the event emitted after a file is deleted
func Removed(displayPath string) string {
	return fmt.Sprintf(`Removed "%s"`, displayPath)
}

// quoted matches the quoted paths inside event messages
var quoted = regexp.MustCompile(`"[^"]*"`)

// 🎯 Logger prints events to a console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	events  int
}

var _ HeaderSink = (*Logger)(nil)

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 Write implements Sink. Quoted paths are highlighted in green.
func (l *Logger) Write(ctx context.Context, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events++
	highlighted := quoted.ReplaceAllStringFunc(message, func(s string) string {
		return color.New(color.FgGreen).Sprint(s)
	})
	fmt.Fprintf(l.console, "    - %s\n", highlighted)

	l.zlog.Info().Str("event", message).Msg("recipe event")
}

// Events returns how many file events were written. Headers are not counted.
func (l *Logger) Events() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events
}

// 📝 Header implements HeaderSink
func (l *Logger) Header(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("recipecopy")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// ✅ Success prints a closing summary line
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Success.WithWriter(l.console).Println(msg)
	l.zlog.Info().Msg(msg)
}

// ❌ Error prints a failure
func (l *Logger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pterm.Error.WithWriter(l.console).Println(err.Error())
	l.zlog.Error().Err(err).Send()
}
