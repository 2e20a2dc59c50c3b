package booking

import (
	"testing"
	"time"

	"github.com/mkamau589/cowork_hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDaily(t *testing.T) {
	first := Interval{Start: at(10, 0), End: at(11, 0)}
	out, err := Expand(first, Recurrence{
		Frequency: models.FrequencyDaily,
		Until:     at(10, 0).AddDate(0, 0, 4),
	})
	require.NoError(t, err)
	require.Len(t, out, 5) // until is inclusive
	for i, iv := range out {
		assert.Equal(t, at(10, 0).AddDate(0, 0, i), iv.Start)
		assert.Equal(t, time.Hour, iv.Duration())
	}
}

func TestExpandWeekly(t *testing.T) {
	first := Interval{Start: at(10, 0), End: at(12, 0)}
	out, err := Expand(first, Recurrence{
		Frequency: models.FrequencyWeekly,
		Until:     at(10, 0).AddDate(0, 0, 15),
	})
	require.NoError(t, err)
	require.Len(t, out, 3) // day 0, 7, 14; day 21 is past until
	assert.Equal(t, at(10, 0).AddDate(0, 0, 14), out[2].Start)
}

func TestExpandMonthlyClampsDayOfMonth(t *testing.T) {
	// Starting Jan 31 the series visits the last day of February, then
	// returns to the 31st in March.
	start := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	first := Interval{Start: start, End: start.Add(time.Hour)}

	out, err := Expand(first, Recurrence{
		Frequency: models.FrequencyMonthly,
		Until:     time.Date(2026, 4, 30, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC), out[0].Start)
	assert.Equal(t, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC), out[1].Start)
	assert.Equal(t, time.Date(2026, 3, 31, 9, 0, 0, 0, time.UTC), out[2].Start)
	assert.Equal(t, time.Date(2026, 4, 30, 9, 0, 0, 0, time.UTC), out[3].Start)
}

func TestExpandMonthlyLeapYear(t *testing.T) {
	start := time.Date(2028, 1, 31, 9, 0, 0, 0, time.UTC)
	first := Interval{Start: start, End: start.Add(time.Hour)}

	out, err := Expand(first, Recurrence{
		Frequency: models.FrequencyMonthly,
		Until:     time.Date(2028, 2, 29, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2028, 2, 29, 9, 0, 0, 0, time.UTC), out[1].Start)
}

func TestExpandSingleOccurrence(t *testing.T) {
	first := Interval{Start: at(10, 0), End: at(11, 0)}
	out, err := Expand(first, Recurrence{
		Frequency: models.FrequencyWeekly,
		Until:     at(10, 0),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, first, out[0])
}

func TestExpandRejectsBadInput(t *testing.T) {
	first := Interval{Start: at(10, 0), End: at(11, 0)}

	_, err := Expand(first, Recurrence{Frequency: models.FrequencyDaily, Until: at(9, 0)})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = Expand(first, Recurrence{Frequency: "yearly", Until: at(12, 0)})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = Expand(Interval{Start: at(11, 0), End: at(10, 0)},
		Recurrence{Frequency: models.FrequencyDaily, Until: at(12, 0)})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestExpandBoundsOccurrenceCount(t *testing.T) {
	first := Interval{Start: at(10, 0), End: at(11, 0)}
	_, err := Expand(first, Recurrence{
		Frequency: models.FrequencyDaily,
		Until:     at(10, 0).AddDate(5, 0, 0),
	})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}
