// Package deltastep (the repository) is a bulk-synchronous Δ-stepping
// engine for single-source shortest paths on weighted directed graphs.
//
// 🚀 What is deltastep?
//
//	A library that computes SSSP distances over a partitioned sparse
//	matrix, exploiting bulk parallelism across many processing elements:
//
//	  • SPMD runtime: rank groups, barriers, reductions, routed sessions
//	  • Partitioned CSR storage with round-robin vertex ownership
//	  • The Δ-stepping bucket engine: light/heavy edge phases
//
// ✨ Why choose deltastep?
//
//   - Deterministic          — lockstep collectives, reproducible traces
//   - Lock-free by partition — every vertex slot is owned by one rank
//   - Verifiable             — ships its own serial Dijkstra oracle
//
// Under the hood, everything is organized under five subpackages:
//
//	core/       — vertex id types and the round-robin rank partition
//	convey/     — rank groups, barrier, reductions, all-to-all sessions
//	spmat/      — per-rank CSR container, graph builders, .wts I/O
//	deltastep/  — the bucket-based relaxation engine itself
//	dijkstra/   — serial reference shortest paths for result checking
//
// Quick ASCII example:
//
//	    0 ──2.0──▶ 2
//	    │          │
//	   5.0        1.0
//	    ▼          ▼
//	    1 ◀────────┘
//
//	the light path 0→2→1 (3.0) beats the direct heavy edge (5.0).
//
// See the Example functions of the deltastep subpackage for full
// examples, and cmd/deltastep for the driver.
//
//	go get github.com/katalvlaran/deltastep
package deltastep
