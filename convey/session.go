// SPDX-License-Identifier: MIT
// Package convey: routed all-to-all sessions.
//
// A session is the only way items cross ranks. The contract mirrors a
// conveyor: Push stages an item toward a destination rank, Finish
// performs the exchange and invokes the handler once per delivered item
// on the destination's own goroutine, then closes with a barrier.
//
// Delivery order at a receiver is deterministic: source rank ascending,
// and per source in push order. Correct programs must nevertheless not
// depend on inter-source interleaving beyond that, matching the "order
// unspecified within one exchange" contract of the engine.
package convey

import "fmt"

// Session is a typed, single-use exchange over the rank group. Created
// by Begin, consumed by Finish.
type Session[T any] struct {
	rk      *Rank
	handler func(item T, fromRank int)
	staged  [][]T // staged[dest]: items this rank pushed toward dest
	done    bool
}

// Begin opens a session on rk whose handler will be invoked on this
// rank's goroutine for every item routed here. Opening is a local
// operation; only Finish synchronizes.
//
// The handler may freely mutate rank-owned state: it runs strictly
// between the two barriers inside Finish, never concurrently with the
// pushing phase and never on a foreign goroutine.
func Begin[T any](rk *Rank, handler func(item T, fromRank int)) *Session[T] {
	return &Session[T]{
		rk:      rk,
		handler: handler,
		staged:  make([][]T, rk.NumRanks()),
	}
}

// Push stages item for delivery to rank dest. O(1) amortized.
//
// Errors:
//   - ErrSessionClosed:  the session has already finished.
//   - ErrBadDestination: dest outside [0, P).
func (s *Session[T]) Push(item T, dest int) error {
	if s.done {
		return ErrSessionClosed
	}
	if dest < 0 || dest >= s.rk.NumRanks() {
		return fmt.Errorf("Push: rank %d: %w", dest, ErrBadDestination)
	}
	s.staged[dest] = append(s.staged[dest], item)

	return nil
}

// Finish runs the exchange: publishes this rank's staged batches, waits
// for every rank to do the same, drains the items addressed here through
// the handler, and closes with a barrier. After Finish returns nil on
// every rank, each pushed item has been handled exactly once at its
// destination, and all handler effects are visible group-wide.
//
// Complexity: O(items pushed + items received) per rank.
func (s *Session[T]) Finish() error {
	if s.done {
		return ErrSessionClosed
	}
	s.done = true

	c := s.rk.comm
	me := s.rk.id

	// Publish: row me of the mailbox is written only by this rank.
	for dest, batch := range s.staged {
		if len(batch) > 0 {
			c.mail[me][dest] = batch
		}
	}
	if err := s.rk.Barrier(); err != nil {
		return err
	}

	// Drain: column me is read only by this rank, source-major.
	for src := 0; src < c.nranks; src++ {
		cell := c.mail[src][me]
		if cell == nil {
			continue
		}
		for _, item := range cell.([]T) {
			s.handler(item, src)
		}
	}
	if err := s.rk.Barrier(); err != nil {
		return err
	}

	// Reset row me for the next session. Every reader of this row passed
	// the barrier above, and the only writer is this goroutine.
	for dest := range c.mail[me] {
		c.mail[me][dest] = nil
	}

	return nil
}

// AllGather exchanges items among all ranks: every rank receives every
// other rank's items. The result is indexed by source rank, so all ranks
// end up with identical contents.
//
// Complexity: O(P * len(items)) pushes per rank.
func AllGather[T any](rk *Rank, items []T) ([][]T, error) {
	out := make([][]T, rk.NumRanks())
	s := Begin(rk, func(item T, from int) {
		out[from] = append(out[from], item)
	})
	for dest := 0; dest < rk.NumRanks(); dest++ {
		for _, item := range items {
			if err := s.Push(item, dest); err != nil {
				return nil, err
			}
		}
	}
	if err := s.Finish(); err != nil {
		return nil, err
	}

	return out, nil
}
