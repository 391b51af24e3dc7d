// SPDX-License-Identifier: MIT
// Package deltastep: append-only trace of the bucket structure, plus the
// final-distance dump helpers on SsspInfo.
//
// Trace sections are human-readable and windowed: tables longer than the
// dump limit show only their head and tail. With more than one rank,
// each rank appends to its own file (path suffixed ".r<rank>") so
// sections never interleave.
package deltastep

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/katalvlaran/deltastep/core"
	"github.com/katalvlaran/deltastep/spmat"
)

// sectionRule separates trace and dump sections.
const sectionRule = "=========================================================="

// displayRanges returns the index windows to render for a table of
// numItems rows under a maxDisp budget: the whole table when it fits,
// otherwise its head and tail halves.
func displayRanges(maxDisp, numItems int) [][2]int {
	if maxDisp > 0 && maxDisp <= numItems {
		return [][2]int{{0, maxDisp / 2}, {numItems - maxDisp/2, numItems}}
	}

	return [][2]int{{0, numItems}}
}

// tracer appends bucket-structure sections for one rank. A nil tracer
// is valid and does nothing; I/O failures latch into err so the engine
// can finish the computation and surface the failure once.
type tracer struct {
	path    string
	maxDisp int
	err     error
}

// newTracer builds the tracer for rank, or nil when tracing is off.
func newTracer(path string, maxDisp, rank, nranks int) *tracer {
	if path == "" {
		return nil
	}
	if nranks > 1 {
		path = fmt.Sprintf("%s.r%d", path, rank)
	}

	return &tracer{path: path, maxDisp: maxDisp}
}

// dumpState appends one section: rank, title, the caller's numbers, a
// timestamp, then the per-element table and the per-bucket membership
// lists, both windowed.
func (t *tracer) dumpState(s *searcher, title string, nums []int) {
	if t == nil || t.err != nil {
		return
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.err = errors.Wrap(err, "deltastep: open trace file")

		return
	}
	defer f.Close()

	var sb strings.Builder
	st := s.store
	fmt.Fprintf(&sb, "%s\n", sectionRule)
	fmt.Fprintf(&sb, "bucket state: rank %d: %s", s.rk.ID(), title)
	for _, n := range nums {
		fmt.Fprintf(&sb, " %d", n)
	}
	fmt.Fprintf(&sb, " at %v\n\n", time.Now())
	fmt.Fprintf(&sb, "nvtxs_this_rank=%d, num_buckets=%d, delta=%v\n", st.local, st.numBuckets, st.delta)

	fmt.Fprintf(&sb, "elt: global_vtx prev_elt next_elt vtx_bucket activated tentative_dist\n")
	for _, r := range displayRanges(t.maxDisp, st.local) {
		for v := r[0]; v < r[1]; v++ {
			bucket := "N"
			if st.vtxBucket[v] != noBucket {
				bucket = fmt.Sprintf("%d", st.vtxBucket[v])
			}
			fmt.Fprintf(&sb, "%d: %d %d %d %s %t %v\n",
				v, s.g.GlobalRow(core.LocalVertex(v)), st.prev[v], st.next[v], bucket, st.activated[v], st.tent[v])
		}
	}
	for e := st.local; e < st.local+st.numBuckets; e++ {
		fmt.Fprintf(&sb, "%d: %d %d\n", e, st.prev[e], st.next[e])
	}

	fmt.Fprintf(&sb, "bucket (bucket_size on this rank): elt elt ...\n")
	for _, r := range displayRanges(t.maxDisp, st.numBuckets) {
		for bk := r[0]; bk < r[1]; bk++ {
			fmt.Fprintf(&sb, "%d (%d):", bk, st.size[bk])
			h := st.header(bk)
			for v := st.next[h]; v != h; v = st.next[v] {
				fmt.Fprintf(&sb, " %d", v)
			}
			fmt.Fprintf(&sb, "\n")
		}
	}
	fmt.Fprintf(&sb, " \n")

	if _, werr := f.WriteString(sb.String()); werr != nil {
		t.err = errors.Wrap(werr, "deltastep: append trace section")
	}
}

// Dump writes a "Final Distances" section to filename: a rule, a
// timestamped title, then windowed "<vertex>: <distance>" lines over the
// vector this record holds (one rank's slice, or the assembled vector).
// Non-fatal for the computation; the distances stay valid either way.
func (info *SsspInfo) Dump(maxDisp int, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "deltastep: create distance dump")
	}
	defer f.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", sectionRule)
	fmt.Fprintf(&sb, "Final Distances at %v\n", time.Now())
	fmt.Fprintf(&sb, "vtx: dist\n")
	for _, r := range displayRanges(maxDisp, len(info.Distance)) {
		for v := r[0]; v < r[1]; v++ {
			fmt.Fprintf(&sb, "%d: %v\n", v, info.Distance[v])
		}
	}

	_, err = f.WriteString(sb.String())

	return errors.Wrap(err, "deltastep: write distance dump")
}

// DumpWts writes the record's distance vector in .wts format for
// cross-run comparison; spmat.ReadWts loads it back.
func (info *SsspInfo) DumpWts(filename string) error {
	return spmat.WriteWts(filename, info.Distance)
}
