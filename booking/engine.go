package booking

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/models"
	"github.com/mkamau589/cowork_hub/utils"
)

// Lifecycle events handed to the Notifier. Delivery is fire-and-forget;
// a failed notification never fails the operation that produced it.
const (
	EventCreated   = "booking_created"
	EventConfirmed = "booking_confirmed"
	EventCancelled = "booking_cancelled"
	EventCompleted = "booking_completed"
)

// Notifier receives booking lifecycle events. Implementations own their own
// error handling; the engine calls them on a separate goroutine and ignores
// the outcome.
type Notifier interface {
	BookingEvent(event string, b models.Booking)
}

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
}

type Config struct {
	// AutoConfirm makes new bookings start out confirmed instead of pending,
	// for deployments that skip manual approval / up-front payment.
	AutoConfirm bool

	// CheckInGrace is how early a member may check in before the booked
	// start time. Defaults to 10 minutes.
	CheckInGrace time.Duration

	// Now is the clock; overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// Engine is the booking scheduling and status engine. It validates requests
// against existing reservations, assigns status and drives the lifecycle
// pending -> confirmed -> completed/cancelled. All durable state lives in
// the Repository; the engine itself is safe for concurrent use.
type Engine struct {
	repo     Repository
	notifier Notifier
	cfg      Config
}

func NewEngine(repo Repository, notifier Notifier, cfg Config) *Engine {
	if cfg.CheckInGrace <= 0 {
		cfg.CheckInGrace = 10 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{repo: repo, notifier: notifier, cfg: cfg}
}

var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCancelled, models.BookingCompleted},
	models.BookingCancelled: {},
	models.BookingCompleted: {},
}

func canTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Request describes one reservation request. Recurring, when set, expands
// the interval into a series of occurrences that are committed all together
// or not at all.
type Request struct {
	ResourceID uuid.UUID
	UserID     uuid.UUID
	Interval   Interval
	Notes      *string
	Recurring  *Recurrence
}

// RequestBooking validates the request, checks every candidate interval
// against existing pending/confirmed bookings on the resource and persists
// the result atomically. The overlap check and the inserts run inside one
// repository transaction holding the resource row lock, so concurrent
// requests for the same resource serialize instead of double-booking.
func (e *Engine) RequestBooking(ctx context.Context, req Request) ([]models.Booking, error) {
	now := e.cfg.Now()
	if !req.Interval.Valid() {
		return nil, NewValidation("start time must be before end time")
	}
	if req.Interval.Start.Before(now) {
		return nil, NewValidation("booking cannot start in the past")
	}

	intervals := []Interval{req.Interval}
	var seriesID *uuid.UUID
	if req.Recurring != nil {
		expanded, err := Expand(req.Interval, *req.Recurring)
		if err != nil {
			return nil, err
		}
		intervals = expanded
		id := uuid.New()
		seriesID = &id
	}

	status := models.BookingPending
	if e.cfg.AutoConfirm {
		status = models.BookingConfirmed
	}

	var created []models.Booking
	err := e.repo.InTransaction(ctx, req.ResourceID, func(tx Repository) error {
		res, err := tx.GetResource(ctx, req.ResourceID)
		if err != nil {
			return err
		}
		if !res.IsActive {
			return NewValidation("resource %q is not active", res.Name)
		}

		// Check and insert are interleaved so each candidate's overlap
		// query also sees the occurrences of this series inserted before
		// it: a series whose occurrence duration exceeds its period must
		// conflict with itself, not commit overlapping bookings.
		created = make([]models.Booking, 0, len(intervals))
		for _, iv := range intervals {
			overlapping, err := tx.Overlapping(ctx, res.ID, iv)
			if err != nil {
				return err
			}
			if len(overlapping) > 0 {
				return NewConflict(iv)
			}

			b := models.Booking{
				ResourceID:    res.ID,
				UserID:        req.UserID,
				Reference:     utils.NewReference(),
				ResourceType:  res.Type,
				StartTime:     iv.Start,
				EndTime:       iv.End,
				Status:        status,
				PaymentStatus: models.PaymentPending,
				TotalAmount:   roundCents(res.HourlyRate * iv.Duration().Hours()),
				Notes:         req.Notes,
			}
			if req.Recurring != nil {
				freq := req.Recurring.Frequency
				until := req.Recurring.Until
				b.IsRecurring = true
				b.Frequency = &freq
				b.RecurrenceEnd = &until
				b.SeriesID = seriesID
			}
			if err := tx.Insert(ctx, &b); err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, b := range created {
		e.notify(EventCreated, b)
	}
	return created, nil
}

// Cancel transitions a booking to cancelled. Only the owning user or an
// admin/staff actor may cancel, only before the booking has ended, and only
// out of a non-terminal state. The row is kept for audit and billing; the
// interval it held becomes bookable again.
func (e *Engine) Cancel(ctx context.Context, bookingID uuid.UUID, requester Actor) (*models.Booking, error) {
	existing, err := e.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var cancelled *models.Booking
	err = e.repo.InTransaction(ctx, existing.ResourceID, func(tx Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID != requester.UserID && !requester.Role.CanManageBookings() {
			return NewForbidden("booking %s does not belong to the requester", bookingID)
		}
		if !canTransition(b.Status, models.BookingCancelled) {
			return NewInvalidState("booking is already %s", b.Status)
		}
		if !e.cfg.Now().Before(b.EndTime) {
			return NewInvalidState("booking has already ended")
		}

		b.Status = models.BookingCancelled
		by := requester.UserID
		b.CancelledBy = &by
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notify(EventCancelled, *cancelled)
	return cancelled, nil
}

// CheckIn records arrival for a confirmed booking. The check-in window is
// [start - grace, end]; outside it, or on a booking in any other state, the
// call fails with an invalid-state error. The status check and the write
// run under the resource lock so a concurrent cancellation is observed, not
// overwritten.
func (e *Engine) CheckIn(ctx context.Context, bookingID uuid.UUID, requester Actor) (*models.Booking, error) {
	existing, err := e.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var checked *models.Booking
	err = e.repo.InTransaction(ctx, existing.ResourceID, func(tx Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID != requester.UserID && !requester.Role.CanManageBookings() {
			return NewForbidden("booking %s does not belong to the requester", bookingID)
		}
		if b.Status != models.BookingConfirmed {
			return NewInvalidState("only confirmed bookings can be checked in, booking is %s", b.Status)
		}
		if b.CheckInTime != nil {
			return NewInvalidState("booking is already checked in")
		}

		now := e.cfg.Now()
		if now.Before(b.StartTime.Add(-e.cfg.CheckInGrace)) || now.After(b.EndTime) {
			return NewInvalidState("check-in is only allowed between %s and %s",
				b.StartTime.Add(-e.cfg.CheckInGrace).Format(time.RFC3339), b.EndTime.Format(time.RFC3339))
		}

		b.CheckInTime = &now
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		checked = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checked, nil
}

// CheckOut records departure and completes the booking. It requires a prior
// check-in; calling it out of order is an invalid-state error.
func (e *Engine) CheckOut(ctx context.Context, bookingID uuid.UUID, requester Actor) (*models.Booking, error) {
	existing, err := e.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var completed *models.Booking
	err = e.repo.InTransaction(ctx, existing.ResourceID, func(tx Repository) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID != requester.UserID && !requester.Role.CanManageBookings() {
			return NewForbidden("booking %s does not belong to the requester", bookingID)
		}
		if b.Status != models.BookingConfirmed || b.CheckInTime == nil {
			return NewInvalidState("check-out requires a checked-in confirmed booking")
		}

		now := e.cfg.Now()
		b.CheckOutTime = &now
		b.Status = models.BookingCompleted
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		completed = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.notify(EventCompleted, *completed)
	return completed, nil
}

// ConfirmPayment moves a pending booking to confirmed after the payment
// provider reports success.
func (e *Engine) ConfirmPayment(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	b, err := e.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canTransition(b.Status, models.BookingConfirmed) {
		return nil, NewInvalidState("booking is %s, cannot confirm", b.Status)
	}

	b.Status = models.BookingConfirmed
	b.PaymentStatus = models.PaymentPaid
	if err := e.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	e.notify(EventConfirmed, *b)
	return b, nil
}

// ListUserBookings returns the user's bookings ordered by start time,
// newest first.
func (e *Engine) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return e.repo.ListByUser(ctx, userID)
}

// ResourceAvailability computes the ordered free sub-intervals of the window
// by subtracting the union of non-cancelled booking intervals on the
// resource.
func (e *Engine) ResourceAvailability(ctx context.Context, resourceID uuid.UUID, window Interval) ([]Interval, error) {
	if !window.Valid() {
		return nil, NewValidation("window start must be before window end")
	}
	if _, err := e.repo.GetResource(ctx, resourceID); err != nil {
		return nil, err
	}

	bookings, err := e.repo.InWindow(ctx, resourceID, window)
	if err != nil {
		return nil, err
	}
	busy := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return Subtract(window, busy), nil
}

// CompleteElapsed sweeps confirmed bookings whose end time has passed into
// the completed state. Called periodically by the scheduler.
func (e *Engine) CompleteElapsed(ctx context.Context) (int64, error) {
	return e.repo.CompleteElapsed(ctx, e.cfg.Now())
}

func (e *Engine) notify(event string, b models.Booking) {
	if e.notifier == nil {
		return
	}
	go e.notifier.BookingEvent(event, b)
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
