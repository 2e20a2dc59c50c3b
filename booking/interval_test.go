package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalOverlaps(t *testing.T) {
	iv := Interval{Start: at(10, 0), End: at(11, 0)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{Start: at(10, 0), End: at(11, 0)}, true},
		{"contained", Interval{Start: at(10, 15), End: at(10, 45)}, true},
		{"straddles start", Interval{Start: at(9, 30), End: at(10, 30)}, true},
		{"straddles end", Interval{Start: at(10, 30), End: at(11, 30)}, true},
		{"covers", Interval{Start: at(9, 0), End: at(12, 0)}, true},
		{"touches end", Interval{Start: at(11, 0), End: at(12, 0)}, false},
		{"touches start", Interval{Start: at(9, 0), End: at(10, 0)}, false},
		{"disjoint after", Interval{Start: at(12, 0), End: at(13, 0)}, false},
		{"disjoint before", Interval{Start: at(8, 0), End: at(9, 0)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, iv.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(iv))
		})
	}
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, Interval{Start: at(9, 0), End: at(10, 0)}.Valid())
	assert.False(t, Interval{Start: at(10, 0), End: at(10, 0)}.Valid())
	assert.False(t, Interval{Start: at(11, 0), End: at(10, 0)}.Valid())
}

func TestSubtract(t *testing.T) {
	window := Interval{Start: at(9, 0), End: at(17, 0)}

	t.Run("no bookings", func(t *testing.T) {
		free := Subtract(window, nil)
		require.Len(t, free, 1)
		assert.Equal(t, window, free[0])
	})

	t.Run("fully booked", func(t *testing.T) {
		free := Subtract(window, []Interval{{Start: at(8, 0), End: at(18, 0)}})
		assert.Empty(t, free)
	})

	t.Run("busy clipped to window", func(t *testing.T) {
		free := Subtract(window, []Interval{{Start: at(8, 0), End: at(10, 0)}})
		require.Len(t, free, 1)
		assert.Equal(t, Interval{Start: at(10, 0), End: at(17, 0)}, free[0])
	})

	t.Run("unsorted overlapping busy intervals merge", func(t *testing.T) {
		free := Subtract(window, []Interval{
			{Start: at(13, 0), End: at(14, 30)},
			{Start: at(10, 0), End: at(11, 0)},
			{Start: at(14, 0), End: at(15, 0)},
		})
		require.Len(t, free, 3)
		assert.Equal(t, Interval{Start: at(9, 0), End: at(10, 0)}, free[0])
		assert.Equal(t, Interval{Start: at(11, 0), End: at(13, 0)}, free[1])
		assert.Equal(t, Interval{Start: at(15, 0), End: at(17, 0)}, free[2])
	})

	t.Run("adjacent busy leaves no gap", func(t *testing.T) {
		free := Subtract(window, []Interval{
			{Start: at(9, 0), End: at(12, 0)},
			{Start: at(12, 0), End: at(17, 0)},
		})
		assert.Empty(t, free)
	})

	t.Run("busy outside window ignored", func(t *testing.T) {
		free := Subtract(window, []Interval{{Start: at(18, 0), End: at(19, 0)}})
		require.Len(t, free, 1)
		assert.Equal(t, window, free[0])
	})
}

func TestIntervalDuration(t *testing.T) {
	iv := Interval{Start: at(9, 0), End: at(10, 30)}
	assert.Equal(t, 90*time.Minute, iv.Duration())
}
