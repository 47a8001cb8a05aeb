// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the structured logger shared by every
// command and hands out named child loggers per component.
package logging

import (
	"context"
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/pdiddy/faqsync/pkg/types"
)

// Logger is the logging contract components depend on.
type Logger = glog.Logger

// Provider owns the root logger.
type Provider struct {
	root *glog.BaseLogger
}

// New builds a provider from the log section of the config. An empty
// level or format falls back to info and console.
func New(cfg types.LogConfig) (*Provider, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	options := []glog.Option{glog.WithLevel(level)}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("unsupported log format %q (want console, json, or pretty)", cfg.Format)
	}

	if level == glog.Trace || level == glog.Debug {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

func parseLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return glog.Info, nil
	case "trace":
		return glog.Trace, nil
	case "debug":
		return glog.Debug, nil
	case "warn", "warning":
		return glog.Warn, nil
	case "error":
		return glog.Error, nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// Get returns the child logger for a component, e.g. "convert". A nil
// provider yields a logger that discards everything.
func (p *Provider) Get(name string) Logger {
	if p == nil || p.root == nil {
		return Nop()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return p.root
	}
	return p.root.GetLogger(name)
}

// WithRun tags every line from l with the report run id.
func WithRun(l Logger, runID string) Logger {
	if l == nil {
		return Nop()
	}
	if fl, ok := l.(glog.FieldsLogger); ok {
		return fl.WithFields(map[string]any{"run": runID})
	}
	return l
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// Nop returns a logger that discards everything.
func Nop() Logger { return nop{} }

type nop struct{}

func (nop) Trace(string, ...any)                      {}
func (nop) Debug(string, ...any)                      {}
func (nop) Info(string, ...any)                       {}
func (nop) Warn(string, ...any)                       {}
func (nop) Error(string, ...any)                      {}
func (nop) Fatal(string, ...any)                      {}
func (n nop) WithContext(context.Context) glog.Logger { return n }
