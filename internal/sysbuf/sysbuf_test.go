// SPDX-License-Identifier: Unlicense OR MIT

package sysbuf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectTrimsToFilled(t *testing.T) {
	got, err := Collect[int](
		func() (int, error) { return 8, nil },
		func(buf []int) (int, error) {
			require.Len(t, buf, 8)
			buf[0], buf[1], buf[2] = 1, 2, 3
			return 3, nil
		})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
	require.Equal(t, 3, cap(got))
}

func TestCollectEmpty(t *testing.T) {
	fillCalled := false
	got, err := Collect[byte](
		func() (int, error) { return 0, nil },
		func(buf []byte) (int, error) {
			fillCalled = true
			return 0, nil
		})
	require.NoError(t, err)
	require.Empty(t, got)
	require.False(t, fillCalled, "fill must not run for a zero-size query")
}

func TestCollectGrownResultIsStale(t *testing.T) {
	_, err := Collect[byte](
		func() (int, error) { return 4, nil },
		func(buf []byte) (int, error) { return 9, nil })
	require.ErrorIs(t, err, ErrStale)
}

func TestCollectSizeError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Collect[byte](
		func() (int, error) { return 0, boom },
		func(buf []byte) (int, error) { return 0, nil })
	require.ErrorIs(t, err, boom)
}

func TestCollectFillError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Collect[byte](
		func() (int, error) { return 4, nil },
		func(buf []byte) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
}

func TestCollectExact(t *testing.T) {
	got, err := CollectExact[byte](
		func() (int, error) { return 2, nil },
		func(buf []byte) (int, error) {
			buf[0], buf[1] = 0xab, 0xcd
			return 2, nil
		})
	require.NoError(t, err)
	require.Equal(t, []byte{0xab, 0xcd}, got)

	_, err = CollectExact[byte](
		func() (int, error) { return 2, nil },
		func(buf []byte) (int, error) { return 1, nil })
	require.ErrorIs(t, err, ErrStale)
}
