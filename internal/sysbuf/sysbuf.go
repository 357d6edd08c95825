// SPDX-License-Identifier: Unlicense OR MIT

// Package sysbuf retrieves variable-length data from native APIs that
// follow the query-size-then-fill calling convention.
package sysbuf

import "errors"

// ErrStale reports that the size required by the native API changed
// between the size query and the fill call. The data behind such calls
// can be mutated concurrently by the system; callers that want the data
// anyway should restart from the size query.
var ErrStale = errors.New("required size changed between query and fill")

// Collect allocates and fills a buffer using the two-call convention.
//
// size reports the element count the native API requires. fill writes
// up to len(buf) elements into buf and reports the count actually
// written, which may be smaller than requested. Only the filled prefix
// is returned; the capacity is clipped so no caller can read past it.
func Collect[T any](size func() (int, error), fill func(buf []T) (int, error)) ([]T, error) {
	n, err := size()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]T, n)
	m, err := fill(buf)
	if err != nil {
		return nil, err
	}
	if m > n {
		return nil, ErrStale
	}
	return buf[:m:m], nil
}

// CollectExact is Collect for native calls that promise to write
// exactly the queried count. A shorter or longer fill is reported as
// ErrStale rather than returned as truncated data.
func CollectExact[T any](size func() (int, error), fill func(buf []T) (int, error)) ([]T, error) {
	n, err := size()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]T, n)
	m, err := fill(buf)
	if err != nil {
		return nil, err
	}
	if m != n {
		return nil, ErrStale
	}
	return buf, nil
}
