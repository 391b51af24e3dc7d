// SPDX-License-Identifier: MIT
// Package convey: group construction and the Rank handle.
//
// Design contract (strict):
//   - One orchestrator: Run(nranks, body). Builds the Comm, launches one
//     goroutine per rank via errgroup, waits for all of them.
//   - The Comm is invisible to callers; every capability is a method on
//     *Rank, mirroring how a rank in an SPMD program only ever sees its
//     own handle.
//   - Failure of any body aborts the group; Run reports the original
//     error, never the secondary ErrAborted noise from bystanders.
package convey

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Comm carries the state shared by all ranks of one group: the barrier,
// the reduction scratch slots and the session mailboxes. It is created
// by Run and never escapes the package.
type Comm struct {
	nranks int
	bar    *barrier

	// Reduction scratch: one slot per rank, reused by every reduction.
	// Lockstep collectives guarantee a single reduction is in flight at
	// a time, so plain slices with barrier fencing suffice.
	f64 []float64
	i64 []int64
	u64 []uint64

	// Session mailboxes: mail[src][dest] holds the typed item batch src
	// pushed toward dest, as an any-wrapped []T. Row src is written only
	// by rank src; column dest is read only by rank dest between the two
	// barriers inside Session.Finish.
	mail [][]any

	abort     chan struct{}
	abortOnce sync.Once
	abortErr  error
}

func newComm(nranks int) *Comm {
	mail := make([][]any, nranks)
	for i := range mail {
		mail[i] = make([]any, nranks)
	}

	return &Comm{
		nranks: nranks,
		bar:    newBarrier(nranks),
		f64:    make([]float64, nranks),
		i64:    make([]int64, nranks),
		u64:    make([]uint64, nranks),
		mail:   mail,
		abort:  make(chan struct{}),
	}
}

// abortWith records the first fatal error and breaks every collective.
func (c *Comm) abortWith(err error) {
	c.abortOnce.Do(func() {
		c.abortErr = err
		close(c.abort)
	})
}

// Rank is one participant's handle on the group. All collective
// operations hang off it; a Rank is confined to the goroutine Run
// created it for and must not be shared.
type Rank struct {
	comm *Comm
	id   int
}

// ID returns this rank's index in [0, NumRanks).
func (r *Rank) ID() int { return r.id }

// NumRanks returns the group size P.
func (r *Rank) NumRanks() int { return r.comm.nranks }

// Barrier blocks until every rank of the group has entered it.
//
// Errors:
//   - ErrAborted: the group was torn down by another rank's failure.
func (r *Rank) Barrier() error {
	return r.comm.bar.await(r.comm.abort)
}

// Run executes body on nranks concurrent ranks sharing one group and
// returns after every rank has finished. The first body error aborts the
// whole group (all pending collectives on other ranks return ErrAborted)
// and is the error Run reports.
//
// Determinism:
//   - The group's collective results are deterministic; scheduling
//     between collectives is not, and bodies must not rely on it.
//
// Complexity:
//   - O(P) goroutines; each collective is O(P) work total.
func Run(nranks int, body func(rk *Rank) error) error {
	if nranks < 1 {
		return ErrBadGroupSize
	}
	if body == nil {
		return ErrNilBody
	}

	c := newComm(nranks)
	var g errgroup.Group
	for i := 0; i < nranks; i++ {
		rk := &Rank{comm: c, id: i}
		g.Go(func() error {
			if err := body(rk); err != nil {
				c.abortWith(err)

				return err
			}

			return nil
		})
	}

	err := g.Wait()
	// Prefer the root cause over whichever bystander error won the race
	// into errgroup's single error slot.
	if c.abortErr != nil {
		return c.abortErr
	}

	return err
}
