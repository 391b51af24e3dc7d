// SPDX-License-Identifier: MIT
// Package deltastep: the per-rank bucket store.
//
// Each bucket is a circular doubly-linked list anchored by a sentinel
// header. Vertex slots and header slots share one flattened index space:
// indices 0..L-1 are the rank's local vertices, indices L..L+K-1 are the
// K bucket headers. Links are two parallel int arrays over those L+K
// slots, so insertion and removal never branch on whether a neighbor is
// a vertex or a header.
//
// A self-loop (prev[e] == next[e] == e) on a vertex slot means "in no
// bucket"; on a header slot it means "bucket empty".
//
// The store also owns the tentative-distance vector: tent starts at +Inf
// everywhere and only ever decreases. On completion the engine moves
// tent out into the result record.
package deltastep

import (
	"fmt"
	"math"

	"github.com/katalvlaran/deltastep/core"
)

// noBucket marks a vertex that is currently in no bucket.
const noBucket = -1

type bucketStore struct {
	delta      float64 // bucket width Δ
	numBuckets int     // ring modulus K
	local      int     // owned vertex count L

	tent      []float64 // L entries, +Inf until first relaxation
	prev      []int     // L+K entries, back links
	next      []int     // L+K entries, forward links
	activated []bool    // L entries, "ever removed from an active bucket"
	vtxBucket []int     // L entries, bucket id or noBucket
	size      []int     // K entries, local membership count per bucket
}

// newBucketStore builds the store for L local vertices and a ring of K
// buckets of width delta. Every list starts empty: all L+K slots are
// self-loops.
func newBucketStore(local int, delta float64, numBuckets int) *bucketStore {
	n := local + numBuckets
	prev := make([]int, n)
	next := make([]int, n)
	for i := range prev {
		prev[i] = i
		next[i] = i
	}

	tent := make([]float64, local)
	for i := range tent {
		tent[i] = math.Inf(1)
	}

	vtxBucket := make([]int, local)
	for i := range vtxBucket {
		vtxBucket[i] = noBucket
	}

	return &bucketStore{
		delta:      delta,
		numBuckets: numBuckets,
		local:      local,
		tent:       tent,
		prev:       prev,
		next:       next,
		activated:  make([]bool, local),
		vtxBucket:  vtxBucket,
		size:       make([]int, numBuckets),
	}
}

// header returns the flattened slot index of bucket bk's sentinel.
func (b *bucketStore) header(bk int) int { return b.local + bk }

// homeBucket maps a finite tentative distance onto the bucket ring:
// ⌊d/Δ⌋ mod K. Undefined for +Inf; callers only pass finite distances.
func (b *bucketStore) homeBucket(d float64) int {
	return int(int64(math.Floor(d/b.delta)) % int64(b.numBuckets))
}

// placeInBucket links v immediately after bucket bk's header.
// Precondition (programmer error if violated): v is in no bucket and its
// slot is a self-loop.
func (b *bucketStore) placeInBucket(v core.LocalVertex, bk int) {
	e := int(v)
	if b.vtxBucket[e] != noBucket || b.prev[e] != e || b.next[e] != e {
		panic(fmt.Sprintf("deltastep: placeInBucket(%d): vertex already linked", e))
	}
	h := b.header(bk)
	b.prev[e] = h
	b.next[e] = b.next[h]
	b.prev[b.next[e]] = e
	b.next[b.prev[e]] = e
	b.vtxBucket[e] = bk
	b.size[bk]++
}

// removeFromBucket unlinks v from whatever bucket holds it and restores
// its self-loop. Harmless on a vertex that is in no bucket.
func (b *bucketStore) removeFromBucket(v core.LocalVertex) {
	e := int(v)
	bk := b.vtxBucket[e]
	if bk == noBucket {
		return
	}
	b.prev[b.next[e]] = b.prev[e]
	b.next[b.prev[e]] = b.next[e]
	b.prev[e] = e
	b.next[e] = e
	b.vtxBucket[e] = noBucket
	b.size[bk]--
}

// emptyBucket unlinks every vertex of bucket bk and marks each one
// activated. The header ends as a self-loop and the local count drops
// to zero.
func (b *bucketStore) emptyBucket(bk int) {
	h := b.header(bk)
	v := b.next[h]
	for v != h {
		w := b.next[v]
		b.next[v] = v
		b.prev[v] = v
		b.vtxBucket[v] = noBucket
		b.activated[v] = true
		v = w
	}
	b.next[h] = h
	b.prev[h] = h
	b.size[bk] = 0
}

// newlyActiveVertices returns the vertices currently in bucket bk whose
// activated flag is still false, in list order. Pure observation.
func (b *bucketStore) newlyActiveVertices(bk int) []core.LocalVertex {
	var fresh []core.LocalVertex
	h := b.header(bk)
	for v := b.next[h]; v != h; v = b.next[v] {
		if !b.activated[v] {
			fresh = append(fresh, core.LocalVertex(v))
		}
	}

	return fresh
}

// stepsToNonempty returns the smallest step s in [1, K) such that bucket
// (start+s) mod K is locally nonempty, or K if every other bucket is
// empty here. The caller reduces the step across ranks; bucket start
// itself is deliberately excluded, since nothing can legally re-enter it
// once its heavy phase has run.
func (b *bucketStore) stepsToNonempty(start int) int {
	steps := 1
	for steps < b.numBuckets && b.size[(start+steps)%b.numBuckets] == 0 {
		steps++
	}

	return steps
}
