// SPDX-License-Identifier: MIT
// Package core defines the vertex id types and the round-robin rank
// partition shared by every other package in deltastep.
//
// Vertices are the half-open integer range [0, N). A Partition fixes how
// that range is dealt out to P ranks: vertex g lives on rank g mod P with
// local index g div P. Both directions of the mapping, plus the per-rank
// slice size, are pure integer arithmetic — no allocation, no lookup
// tables, no locks.
//
// Everything downstream leans on this single ownership rule:
//
//	core/   ←  you are here (owner / local / global arithmetic)
//	spmat/  ←  stores only the rows a rank owns
//	convey/ ←  routes items to the owner rank
//	deltastep/ ← mutates tentative state only for owned vertices
//
// Errors (sentinel):
//
//	ErrBadRankCount   - partition requested with < 1 ranks.
//	ErrBadVertexCount - partition requested with negative vertex count.
//	ErrVertexRange    - a vertex id outside [0, N) was passed in.
package core
