// SPDX-License-Identifier: MIT
// Package convey: the cyclic barrier shared by all collectives.
//
// Implementation notes:
//   - Generation handover happens by closing the current release channel
//     and installing a fresh one; late waiters always hold the channel of
//     the generation they arrived in, so a fast rank re-entering the next
//     barrier cannot strand a slow one.
//   - An abort breaks the barrier permanently: waiters unblock with
//     ErrAborted and every later await fails fast.
package convey

import "sync"

// barrier is a reusable (cyclic) rendezvous for size participants.
type barrier struct {
	mu      sync.Mutex
	size    int
	arrived int
	release chan struct{}
	broken  bool
}

func newBarrier(size int) *barrier {
	return &barrier{size: size, release: make(chan struct{})}
}

// await blocks until all size participants have arrived, or until abort
// is closed. The last arriver releases the generation and resets the
// count, so the barrier is immediately reusable.
func (b *barrier) await(abort <-chan struct{}) error {
	// Fail fast if the group already died; arriving at a dead barrier
	// must not consume a slot of the next generation.
	select {
	case <-abort:
		return ErrAborted
	default:
	}

	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()

		return ErrAborted
	}
	b.arrived++
	if b.arrived == b.size {
		// Last one in: release this generation and reset for the next.
		close(b.release)
		b.release = make(chan struct{})
		b.arrived = 0
		b.mu.Unlock()

		return nil
	}
	rel := b.release
	b.mu.Unlock()

	select {
	case <-rel:
		return nil
	case <-abort:
		b.mu.Lock()
		b.broken = true
		b.mu.Unlock()

		return ErrAborted
	}
}
