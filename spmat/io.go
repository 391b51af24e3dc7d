// SPDX-License-Identifier: MIT
// Package spmat: .wts vector I/O.
//
// The .wts format is the flat interchange form used for cross-run
// comparison of per-vertex values (edge weights, final distances):
//
//	<count>\n
//	<value 0>\n
//	<value 1>\n
//	...
//
// Values are formatted with strconv 'g'/-1, so a write→read round trip
// reproduces the vector exactly; +Inf serializes as "+Inf" and is read
// back as such.
package spmat

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// WriteWts writes vals to filename in .wts format, creating or
// truncating the file. The write is buffered and flushed before close.
func WriteWts(filename string, vals []float64) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "spmat: create wts file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err = fmt.Fprintf(w, "%d\n", len(vals)); err != nil {
		return errors.Wrap(err, "spmat: write wts header")
	}
	for _, v := range vals {
		if _, err = w.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return errors.Wrap(err, "spmat: write wts value")
		}
		if err = w.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "spmat: write wts value")
		}
	}

	return errors.Wrap(w.Flush(), "spmat: flush wts file")
}

// ReadWts reads a .wts vector back from filename.
//
// Errors:
//   - ErrBadWtsFormat: missing or unparsable header, short body, or an
//     unparsable value line (wrapped with line context).
//   - I/O failures wrapped with file context.
func ReadWts(filename string) ([]float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "spmat: open wts file")
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return nil, fmt.Errorf("ReadWts: empty file: %w", ErrBadWtsFormat)
	}
	count, err := strconv.Atoi(sc.Text())
	if err != nil || count < 0 {
		return nil, fmt.Errorf("ReadWts: header %q: %w", sc.Text(), ErrBadWtsFormat)
	}

	vals := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ReadWts: want %d values, got %d: %w", count, i, ErrBadWtsFormat)
		}
		v, perr := strconv.ParseFloat(sc.Text(), 64)
		if perr != nil {
			return nil, fmt.Errorf("ReadWts: line %d value %q: %w", i+2, sc.Text(), ErrBadWtsFormat)
		}
		vals = append(vals, v)
	}
	if err = sc.Err(); err != nil {
		return nil, errors.Wrap(err, "spmat: scan wts file")
	}

	return vals, nil
}
