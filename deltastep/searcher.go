// SPDX-License-Identifier: MIT
// Package deltastep: the searcher — relaxation, request building, and
// the routed exchange.
//
// Parallel notes:
//   - Vertices belong to ranks in round-robin order; each rank's bucket
//     store only ever holds vertices that rank owns.
//   - All cross-rank traffic is the request exchange in relaxRequests: a
//     request to relax an edge with head w travels to the rank owning w
//     and is applied there, on that rank's goroutine. Every slot of
//     tent/activated/vtxBucket/prev/next therefore has exactly one
//     writer, and the engine needs no locks.
package deltastep

import (
	"fmt"

	"github.com/katalvlaran/deltastep/convey"
	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/spmat"
)

// request is one potential edge relaxation, routed to the rank owning
// the head vertex. Carrying the tail as well is the extension point for
// building shortest-path trees; distances alone need only these two.
type request struct {
	head core.GlobalVertex // head of the edge being relaxed
	dist float64           // candidate distance from the source via that edge
}

// searcher binds the graph, the rank handle, and the bucket store for
// one delta-stepping invocation.
type searcher struct {
	g     *spmat.SparseMat
	rk    *convey.Rank
	store *bucketStore
	tr    *tracer

	// err latches the first ownership violation observed inside a session
	// handler, where there is no error return path. relaxRequests
	// surfaces it right after the session closes.
	err error
}

// relax applies one incoming request: if the candidate distance improves
// on tent[w], move w to its new home bucket and record the distance.
// Runs only on the rank owning the head vertex, so there is no race on
// tent[w] or on w's list slot.
func (s *searcher) relax(r request) {
	if s.g.Part.Owner(r.head) != s.rk.ID() {
		if s.err == nil {
			s.err = fmt.Errorf("relax: vertex %d routed to rank %d: %w", r.head, s.rk.ID(), ErrOwnership)
		}

		return
	}
	w := s.g.Part.Local(r.head)

	if r.dist >= s.store.tent[w] {
		return
	}
	newBucket := s.store.homeBucket(r.dist)
	if old := s.store.vtxBucket[w]; old != noBucket {
		if old != newBucket {
			s.store.removeFromBucket(w)
			s.store.placeInBucket(w, newBucket)
		}
		// Same bucket: membership stays, only the distance tightens.
	} else {
		s.store.placeInBucket(w, newBucket)
	}
	s.store.tent[w] = r.dist
}

// findLightRequests scans bucket bk and emits one request per light edge
// (weight ≤ Δ) leaving its vertices, using the tentative distances as
// they stand at emit time. Read-only.
func (s *searcher) findLightRequests(bk int) []request {
	var reqs []request
	h := s.store.header(bk)
	for v := s.store.next[h]; v != h; v = s.store.next[v] {
		for adj := s.g.Offset[v]; adj < s.g.Offset[v+1]; adj++ {
			if w := s.g.Value[adj]; w <= s.store.delta {
				reqs = append(reqs, request{
					head: s.g.Nonzero[adj],
					dist: s.store.tent[v] + w,
				})
			}
		}
	}

	return reqs
}

// findHeavyRequests emits one request per heavy edge (weight > Δ)
// leaving the vertices of removed, reading the tentative distances as
// settled after the middle loop drained.
func (s *searcher) findHeavyRequests(removed []core.LocalVertex) []request {
	var reqs []request
	for _, v := range removed {
		for adj := s.g.Offset[v]; adj < s.g.Offset[v+1]; adj++ {
			if w := s.g.Value[adj]; w > s.store.delta {
				reqs = append(reqs, request{
					head: s.g.Nonzero[adj],
					dist: s.store.tent[v] + w,
				})
			}
		}
	}

	return reqs
}

// relaxRequests routes every request to the rank owning its head and
// applies it there. When it returns nil on every rank, each request has
// been applied exactly once and all relaxation effects are visible
// group-wide: the session's closing barrier is the phase boundary, no
// extra barrier is needed on top.
func (s *searcher) relaxRequests(reqs []request) error {
	session := convey.Begin(s.rk, func(r request, _ int) {
		s.relax(r)
	})
	for _, r := range reqs {
		if err := session.Push(r, s.g.Part.Owner(r.head)); err != nil {
			return err
		}
	}
	if err := session.Finish(); err != nil {
		return err
	}

	// An ownership violation on any rank is fatal for the whole group.
	return s.err
}
