package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(NewConflict(Interval{Start: at(10, 0), End: at(11, 0)})))
	assert.Equal(t, KindValidation, KindOf(NewValidation("bad input")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain error")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("requesting booking: %w", NewForbidden("not yours"))
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.True(t, IsKind(err, KindForbidden))
	assert.False(t, IsKind(err, KindConflict))
}

func TestConflictCarriesInterval(t *testing.T) {
	iv := Interval{Start: at(10, 0), End: at(11, 0)}
	err := NewConflict(iv)

	var e *Error
	require.ErrorAs(t, error(err), &e)
	require.NotNil(t, e.Conflict)
	assert.Equal(t, iv, *e.Conflict)
	assert.Contains(t, e.Error(), "overlaps")
}
