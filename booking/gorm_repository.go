package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const retryBackoff = 250 * time.Millisecond

var activeStatuses = []models.BookingStatus{models.BookingPending, models.BookingConfirmed}

// GormRepository implements Repository on a GORM handle. Every call runs
// under a per-call deadline; a timed-out call is retried once after a short
// backoff before surfacing as a persistence timeout. Transaction-scoped
// copies carry no timeout of their own: the outer call's deadline already
// covers them, and retrying inside a broken transaction would be wrong.
type GormRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormRepository(db *gorm.DB, timeout time.Duration) *GormRepository {
	return &GormRepository{db: db, timeout: timeout}
}

func (r *GormRepository) InTransaction(ctx context.Context, resourceID uuid.UUID, fn func(tx Repository) error) error {
	return r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var res models.Resource
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, "id = ?", resourceID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewNotFound("resource %s not found", resourceID)
				}
				return err
			}
			return fn(&GormRepository{db: tx})
		})
	})
}

func (r *GormRepository) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	var res models.Resource
	err := r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("resource %s not found", id)
		}
		return nil, err
	}
	return &res, nil
}

func (r *GormRepository) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("booking %s not found", id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormRepository) Insert(ctx context.Context, b *models.Booking) error {
	return r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(b).Error
	})
}

func (r *GormRepository) Update(ctx context.Context, b *models.Booking) error {
	return r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Save(b).Error
	})
}

func (r *GormRepository) Overlapping(ctx context.Context, resourceID uuid.UUID, iv Interval) ([]models.Booking, error) {
	var out []models.Booking
	err := r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("resource_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				resourceID, activeStatuses, iv.End, iv.Start).
			Order("start_time asc").
			Find(&out).Error
	})
	return out, err
}

func (r *GormRepository) InWindow(ctx context.Context, resourceID uuid.UUID, window Interval) ([]models.Booking, error) {
	var out []models.Booking
	err := r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("resource_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				resourceID, models.BookingCancelled, window.End, window.Start).
			Order("start_time asc").
			Find(&out).Error
	})
	return out, err
}

func (r *GormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	err := r.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Preload("Resource").
			Where("user_id = ?", userID).
			Order("start_time desc").
			Find(&out).Error
	})
	return out, err
}

func (r *GormRepository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	var affected int64
	err := r.run(ctx, func(ctx context.Context) error {
		res := r.db.WithContext(ctx).
			Model(&models.Booking{}).
			Where("status = ? AND end_time <= ?", models.BookingConfirmed, now).
			Update("status", models.BookingCompleted)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *GormRepository) run(ctx context.Context, op func(ctx context.Context) error) error {
	err := r.attempt(ctx, op)
	if r.timeout > 0 && isStoreTimeout(err) {
		time.Sleep(retryBackoff)
		err = r.attempt(ctx, op)
	}
	if isStoreTimeout(err) {
		return NewPersistenceTimeout("persistence store did not respond in time")
	}
	return err
}

func (r *GormRepository) attempt(ctx context.Context, op func(ctx context.Context) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return op(ctx)
}

func isStoreTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
