// SPDX-License-Identifier: MIT
// Package dijkstra: sentinel errors and configuration options.
//
// Errors (sentinel):
//
//	ErrNilGraph     if the provided container pointer is nil.
//	ErrUnweighted   if the container lacks edge weights.
//	ErrPartitioned  if the container is a shard of a multi-rank group.
//	ErrSourceRange  if the source vertex does not lie in [0, N).
package dijkstra

import (
	"errors"

	"github.com/katalvlaran/deltastep/core"
)

// Sentinel errors returned by the reference implementation.
var (
	// ErrNilGraph indicates that a nil *spmat.SparseMat was passed in.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrUnweighted indicates the container has no edge-weight array;
	// shortest paths require weights.
	ErrUnweighted = errors.New("dijkstra: graph must be weighted")

	// ErrPartitioned indicates the container holds only one rank's rows.
	// The serial oracle needs the whole graph.
	ErrPartitioned = errors.New("dijkstra: graph is a multi-rank shard")

	// ErrSourceRange indicates the source vertex is outside [0, N).
	ErrSourceRange = errors.New("dijkstra: source vertex out of range")
)

// Options configures the reference run.
//
// Source - the source vertex (global id, default 0).
type Options struct {
	Source core.GlobalVertex
}

// Option represents a functional option for Dijkstra.
type Option func(*Options)

// WithSource sets the source vertex; range validation happens in
// Dijkstra, where the graph's dimension is known.
func WithSource(v core.GlobalVertex) Option {
	return func(o *Options) { o.Source = v }
}

// DefaultOptions returns the defaults Dijkstra starts from: source 0.
func DefaultOptions() Options {
	return Options{Source: 0}
}
