package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/models"
)

// memRepo is an in-memory Repository used by the engine tests. It mirrors
// the transactional contract of the GORM implementation: InTransaction
// serializes on a mutex and rolls the booking table back when fn fails.
type memRepo struct {
	mu        sync.Mutex
	resources map[uuid.UUID]models.Resource
	bookings  map[uuid.UUID]models.Booking
	failNext  error
}

func newMemRepo() *memRepo {
	return &memRepo{
		resources: make(map[uuid.UUID]models.Resource),
		bookings:  make(map[uuid.UUID]models.Booking),
	}
}

func (m *memRepo) addResource(res models.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[res.ID] = res
}

func (m *memRepo) failOnce(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *memRepo) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memRepo) InTransaction(ctx context.Context, resourceID uuid.UUID, fn func(tx Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.resources[resourceID]; !ok {
		return NewNotFound("resource %s not found", resourceID)
	}

	snapshot := make(map[uuid.UUID]models.Booking, len(m.bookings))
	for k, v := range m.bookings {
		snapshot[k] = v
	}
	if err := fn(&memTx{m}); err != nil {
		m.bookings = snapshot
		return err
	}
	return nil
}

func (m *memRepo) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	return m.getResource(id)
}

func (m *memRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	return m.getBooking(id)
}

func (m *memRepo) Insert(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(b)
}

func (m *memRepo) Update(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(b)
}

func (m *memRepo) Overlapping(ctx context.Context, resourceID uuid.UUID, iv Interval) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapping(resourceID, iv)
}

func (m *memRepo) InWindow(ctx context.Context, resourceID uuid.UUID, window Interval) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inWindow(resourceID, window)
}

func (m *memRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listByUser(userID)
}

func (m *memRepo) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completeElapsed(now)
}

// memTx exposes the same data without re-locking; the transaction already
// holds the mutex.
type memTx struct{ m *memRepo }

func (t *memTx) InTransaction(ctx context.Context, resourceID uuid.UUID, fn func(tx Repository) error) error {
	return fn(t)
}

func (t *memTx) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	return t.m.getResource(id)
}

func (t *memTx) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return t.m.getBooking(id)
}

func (t *memTx) Insert(ctx context.Context, b *models.Booking) error { return t.m.insert(b) }
func (t *memTx) Update(ctx context.Context, b *models.Booking) error { return t.m.update(b) }

func (t *memTx) Overlapping(ctx context.Context, resourceID uuid.UUID, iv Interval) ([]models.Booking, error) {
	return t.m.overlapping(resourceID, iv)
}

func (t *memTx) InWindow(ctx context.Context, resourceID uuid.UUID, window Interval) ([]models.Booking, error) {
	return t.m.inWindow(resourceID, window)
}

func (t *memTx) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return t.m.listByUser(userID)
}

func (t *memTx) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	return t.m.completeElapsed(now)
}

func (m *memRepo) getResource(id uuid.UUID) (*models.Resource, error) {
	res, ok := m.resources[id]
	if !ok {
		return nil, NewNotFound("resource %s not found", id)
	}
	return &res, nil
}

func (m *memRepo) getBooking(id uuid.UUID) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, NewNotFound("booking %s not found", id)
	}
	return &b, nil
}

func (m *memRepo) insert(b *models.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.bookings[b.ID] = *b
	return nil
}

func (m *memRepo) update(b *models.Booking) error {
	if _, ok := m.bookings[b.ID]; !ok {
		return NewNotFound("booking %s not found", b.ID)
	}
	m.bookings[b.ID] = *b
	return nil
}

func (m *memRepo) overlapping(resourceID uuid.UUID, iv Interval) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ResourceID != resourceID {
			continue
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			continue
		}
		if (Interval{Start: b.StartTime, End: b.EndTime}).Overlaps(iv) {
			out = append(out, b)
		}
	}
	sortByStart(out, false)
	return out, nil
}

func (m *memRepo) inWindow(resourceID uuid.UUID, window Interval) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ResourceID != resourceID || b.Status == models.BookingCancelled {
			continue
		}
		if (Interval{Start: b.StartTime, End: b.EndTime}).Overlaps(window) {
			out = append(out, b)
		}
	}
	sortByStart(out, false)
	return out, nil
}

func (m *memRepo) listByUser(userID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortByStart(out, true)
	return out, nil
}

func (m *memRepo) completeElapsed(now time.Time) (int64, error) {
	var affected int64
	for id, b := range m.bookings {
		if b.Status == models.BookingConfirmed && !b.EndTime.After(now) {
			b.Status = models.BookingCompleted
			m.bookings[id] = b
			affected++
		}
	}
	return affected, nil
}

func sortByStart(bs []models.Booking, desc bool) {
	sort.Slice(bs, func(i, j int) bool {
		if desc {
			return bs[i].StartTime.After(bs[j].StartTime)
		}
		return bs[i].StartTime.Before(bs[j].StartTime)
	})
}
