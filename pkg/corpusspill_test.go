package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpill(t *testing.T) {
	t.Run("NewSpill", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)
		require.NotNil(t, spill)
		require.Contains(t, spill.Path(), "stitch-spill")
		defer spill.Close()
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill, err := NewSpill[string]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val1, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val1)

		val2, err := spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val2)

		val3, err := spill.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val3)
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.Append(1))
		require.Equal(t, uint64(1), spill.Len())

		require.NoError(t, spill.Append(2))
		require.NoError(t, spill.Append(3))
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("AppendBatch adds multiple items", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]int{10, 20, 30, 40, 50}))
		require.Equal(t, uint64(5), spill.Len())

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 10, val)

		val, err = spill.Get(4)
		require.NoError(t, err)
		require.Equal(t, 50, val)
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		var seen []int
		err = spill.Range(func(index uint64, item int) error {
			require.Equal(t, uint64(len(seen)), index)
			seen = append(seen, item)

			return nil
		})
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, seen)
	})

	t.Run("Range on empty spill is a no-op", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		err = spill.Range(func(uint64, int) error {
			t.Fatal("unexpected callback")
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		stop := errors.New("stop")
		count := 0

		err = spill.Range(func(uint64, int) error {
			count++
			if count == 2 {
				return stop
			}

			return nil
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 2, count)
	})

	t.Run("spill holds struct values", func(t *testing.T) {
		type record struct {
			ID   uint
			Body string
		}

		spill, err := NewSpill[record]()
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(record{ID: 7, Body: "payload"}))

		got, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, record{ID: 7, Body: "payload"}, got)
	})

	t.Run("Close removes the backing file", func(t *testing.T) {
		spill, err := NewSpill[int]()
		require.NoError(t, err)

		path := spill.Path()
		require.FileExists(t, path)

		require.NoError(t, spill.Close())
		require.NoFileExists(t, path)

		// Closing twice is harmless.
		require.NoError(t, spill.Close())
	})
}
