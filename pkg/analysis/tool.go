package analysis

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownDeltaMode is returned when an unrecognized error-delta mode
// name is requested.
var ErrUnknownDeltaMode = errors.New("unknown error-delta mode")

// DeltaMode selects how ErrorDelta treats rules that were present in the
// "before" snapshot but disappeared from the "after" snapshot.
type DeltaMode string

const (
	// DeltaAppeared keys the delta by the rules of the "after" snapshot
	// only. A rule that disappeared entirely produces no entry.
	DeltaAppeared DeltaMode = "appeared"
	// DeltaSymmetric additionally emits a negative entry for every rule
	// present in "before" but absent from "after".
	DeltaSymmetric DeltaMode = "symmetric"
)

// ParseDeltaMode validates a mode name from configuration.
func ParseDeltaMode(name string) (DeltaMode, error) {
	switch DeltaMode(name) {
	case DeltaAppeared, DeltaSymmetric:
		return DeltaMode(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDeltaMode, name)
	}
}

// Runner executes one external command line in a working directory and
// returns its exit status plus combined stdout+stderr. A non-nil error
// means the process could not be started at all.
type Runner interface {
	Run(ctx context.Context, command, dir string) (int, string, error)
}

// Tool wraps one static-analysis backend.
//
// Run never fails the walk: invocation and parse failures degrade to the
// UnknownScore sentinel. Every method is mandatory for every variant so
// that the walker and aggregator stay backend-agnostic.
type Tool interface {
	// Name returns the registry name of the backend.
	Name() string

	// Run executes the backend against the current working tree and
	// captures its output as a scored snapshot.
	Run(ctx context.Context) *Snapshot

	// Score extracts the backend-specific quality score from a snapshot,
	// or UnknownScore when the output does not match.
	Score(snap *Snapshot) float64

	// IsRelevant reports whether one change-statistics line (canonical
	// "path | N ++--" format) names a file this backend analyzes.
	IsRelevant(statLine string) bool

	// ErrorDelta returns per-rule signed occurrence deltas between two
	// snapshots, in chronological before/after order.
	ErrorDelta(before, after *Snapshot) ErrorDelta
}
