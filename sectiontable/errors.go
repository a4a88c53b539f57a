package sectiontable

import (
	"errors"
	"fmt"
	"log/slog"
)

// Common errors returned or reported by the sectiontable package.
var (
	// ErrLookupMiss is reported when a coordinate or section is out of range.
	ErrLookupMiss = errors.New("no cell at coordinate")

	// ErrUnsupportedArity is returned when an action handler takes more than one argument.
	ErrUnsupportedArity = errors.New("unsupported action arity")

	// ErrActionNotImplemented is reported when no handler is registered for an action.
	ErrActionNotImplemented = errors.New("action not implemented")

	// ErrNoImageLoader is reported when a cell asks for a remote image without a loader.
	ErrNoImageLoader = errors.New("no image loader configured")

	// ErrInvalidDescriptor is reported when a cell descriptor carries a malformed value.
	ErrInvalidDescriptor = errors.New("invalid cell descriptor")

	// ErrNotAFunction is returned when a registered action handler is not callable.
	ErrNotAFunction = errors.New("action handler is not a function")
)

// DiagnosticKind categorizes a recovered anomaly.
type DiagnosticKind int

const (
	// KindLookupMiss indicates a missing section, row or cell sequence.
	KindLookupMiss DiagnosticKind = iota
	// KindUnsupportedActionArity indicates a handler with an unusable signature.
	KindUnsupportedActionArity
	// KindUnimplementedAction indicates an action name with no handler.
	KindUnimplementedAction
	// KindMissingImageCapability indicates a remote image without a loader.
	KindMissingImageCapability
	// KindInvalidDescriptor indicates a malformed descriptor value that was replaced by a default.
	KindInvalidDescriptor
)

func (k DiagnosticKind) String() string {
	switch k {
	case KindLookupMiss:
		return "lookup-miss"
	case KindUnsupportedActionArity:
		return "unsupported-action-arity"
	case KindUnimplementedAction:
		return "unimplemented-action"
	case KindMissingImageCapability:
		return "missing-image-capability"
	case KindInvalidDescriptor:
		return "invalid-descriptor"
	default:
		return "unknown"
	}
}

// Diagnostic describes an anomaly that was recovered locally. It is logged,
// never returned from rendering or dispatch.
type Diagnostic struct {
	// Op is the operation that recovered (e.g. "ResolveView").
	Op   string
	Kind DiagnosticKind
	Err  error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s]: %v", d.Op, d.Kind, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// reporter emits diagnostics to the configured logger and hook.
type reporter struct {
	logger *slog.Logger
	hook   func(*Diagnostic)
}

func newReporter(cfg Config) reporter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return reporter{logger: logger, hook: cfg.OnDiagnostic}
}

func (r reporter) report(op string, kind DiagnosticKind, err error) {
	d := &Diagnostic{Op: op, Kind: kind, Err: err}
	r.logger.Warn("sectiontable diagnostic",
		"op", op,
		"kind", kind.String(),
		"error", err)
	if r.hook != nil {
		r.hook(d)
	}
}
