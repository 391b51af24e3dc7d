// SPDX-License-Identifier: MIT
// Package deltastep: configuration options, sentinel errors, and the
// result record.
package deltastep

import (
	"errors"
	"time"

	"github.com/inconshreveable/log15"

	"github.com/katalvlaran/deltastep/core"
)

var log = log15.New("pkg", "deltastep")

// Sentinel errors returned by the engine.
var (
	// ErrNilGraph indicates that a nil *spmat.SparseMat was passed to Run.
	ErrNilGraph = errors.New("deltastep: graph is nil")

	// ErrNilRank indicates that a nil *convey.Rank was passed to Run.
	ErrNilRank = errors.New("deltastep: rank is nil")

	// ErrNonSquare indicates the container's global row and column counts
	// differ; vertices and adjacency columns must share one namespace.
	ErrNonSquare = errors.New("deltastep: graph is not square")

	// ErrNoWeights indicates the container lacks the edge-weight side
	// array. Delta-stepping is meaningless without weights.
	ErrNoWeights = errors.New("deltastep: graph has no edge weights")

	// ErrSourceRange indicates the source vertex is outside [0, N).
	ErrSourceRange = errors.New("deltastep: source vertex out of range")

	// ErrBadDelta indicates a forced bucket width that is not a positive
	// finite number.
	ErrBadDelta = errors.New("deltastep: delta must be positive and finite")

	// ErrOwnership indicates a relaxation request was routed to a rank
	// that does not own the target vertex. This is a router bug, fatal on
	// every rank of the group.
	ErrOwnership = errors.New("deltastep: relaxation for vertex not owned here")
)

// DefaultDumpLimit is the head/tail window applied to trace tables when
// no WithDumpLimit override is given.
const DefaultDumpLimit = 20

// Options configures one delta-stepping invocation.
//
// Source      - the source vertex (global id; must lie in [0, N)).
// ForcedDelta - bucket width override; 0 means "derive 1/maxdeg".
// TracePath   - when non-empty, append per-phase state dumps there.
// DumpLimit   - head/tail window for trace tables (> 0).
type Options struct {
	Source      core.GlobalVertex
	ForcedDelta float64
	TracePath   string
	DumpLimit   int
}

// Option represents a functional option for Run.
type Option func(*Options)

// WithSource sets the source vertex. Range validation happens in Run,
// where the graph's dimension is known.
func WithSource(v core.GlobalVertex) Option {
	return func(o *Options) { o.Source = v }
}

// WithForcedDelta overrides the default bucket width Δ = 1/maxdeg.
// Run rejects non-positive or non-finite values with ErrBadDelta.
func WithForcedDelta(d float64) Option {
	return func(o *Options) { o.ForcedDelta = d }
}

// WithTrace appends a human-readable dump of the bucket structure to
// path after seeding and after every middle and outer iteration. Trace
// I/O failures do not stop the computation: the first failure latches,
// later sections are skipped, and Run returns the completed record
// together with that error.
func WithTrace(path string) Option {
	return func(o *Options) { o.TracePath = path }
}

// WithDumpLimit sets the head/tail window for trace tables. Values < 1
// are ignored in favor of DefaultDumpLimit.
func WithDumpLimit(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.DumpLimit = n
		}
	}
}

// DefaultOptions returns the option set Run starts from: source 0,
// derived Δ, no tracing.
func DefaultOptions() Options {
	return Options{
		Source:      0,
		ForcedDelta: 0,
		TracePath:   "",
		DumpLimit:   DefaultDumpLimit,
	}
}

// SsspInfo is the engine's result record. Distance is this rank's slice
// of tentative distances, moved out of the bucket store on completion:
// Distance[l] is the distance of the vertex with local index l, +Inf if
// unreachable. Cross-rank assembly is the caller's job (see
// AssembleDistances).
type SsspInfo struct {
	Distance []float64
	Source   core.GlobalVertex
	Laptime  time.Duration
}
