package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/models"
)

// Repository is the persistence contract the engine runs against. The store
// is the sole arbiter of consistency; the engine keeps no state between
// calls. Implementations must return *Error values with KindNotFound for
// absent rows and KindPersistenceTimeout for store deadlines.
type Repository interface {
	// InTransaction runs fn against a transaction-scoped repository while
	// holding an exclusive lock on the resource row. The overlap check and
	// the inserts for a request (the whole batch, for recurring series) must
	// happen inside one call so two concurrent requests cannot both pass the
	// check and both insert. fn returning an error rolls everything back.
	InTransaction(ctx context.Context, resourceID uuid.UUID, fn func(tx Repository) error) error

	GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Insert(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) error

	// Overlapping returns bookings on the resource with status pending or
	// confirmed whose interval overlaps iv under half-open semantics.
	Overlapping(ctx context.Context, resourceID uuid.UUID, iv Interval) ([]models.Booking, error)

	// InWindow returns non-cancelled bookings on the resource overlapping
	// the window, ordered by start time.
	InWindow(ctx context.Context, resourceID uuid.UUID, window Interval) ([]models.Booking, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)

	// CompleteElapsed transitions every confirmed booking whose end time has
	// passed to completed and reports how many rows changed.
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}
