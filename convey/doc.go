// SPDX-License-Identifier: MIT
// Package convey is the SPMD runtime under deltastep: a fixed group of
// ranks executing the same control flow, synchronized only at collective
// points.
//
// 🚀 What is convey?
//
//	Run(P, body) launches P rank goroutines over one shared Comm and
//	gives each a *Rank handle exposing exactly four kinds of collective:
//
//	  • Barrier()                — everyone waits for everyone
//	  • ReduceSum / Min / Max    — combine one value per rank, all ranks
//	                               observe the same result
//	  • Begin[T](rk, handler)    — a routed all-to-all session: Push items
//	                               at any destination rank, Finish()
//	                               delivers each exactly once, on the
//	                               destination's own goroutine
//	  • AllGather[T]             — convenience full exchange over a session
//
// Ordering model:
//
//	Collectives are lockstep: every rank must issue the same sequence of
//	collective calls. Within one session the delivery order at a receiver
//	is source-rank-major and push-ordered per source; across sessions the
//	closing barrier of Finish provides the happens-before edge between a
//	producing phase and the next phase's reads.
//
// Failure model:
//
//	There is no partial recovery. When any rank's body returns an error,
//	the whole group is aborted: every blocked or future collective on the
//	other ranks returns ErrAborted, and Run reports the original error.
//
// Errors (sentinel):
//
//	ErrAborted        - the group was torn down by another rank's failure.
//	ErrBadGroupSize   - Run was asked for fewer than one rank.
//	ErrNilBody        - Run was given a nil body.
//	ErrBadDestination - Push targeted a rank outside [0, P).
//	ErrSessionClosed  - Push after Finish.
package convey
