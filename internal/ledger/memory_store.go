package ledger

import (
	"context"
	"slices"
	"sync"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/google/uuid"
)

// MemoryStore is a Store kept in process memory. It backs tests and
// single-node runs without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*entity.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (s *MemoryStore) BookedSeats(ctx context.Context, key entity.ShowKey) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seats := []string{}
	for _, b := range s.bookings {
		if key.Matches(b.ShowKey()) {
			seats = append(seats, b.Seats...)
		}
	}
	return seats, nil
}

func (s *MemoryStore) Insert(ctx context.Context, b *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[b.ID]; exists {
		return invalid("id", "duplicate booking id")
	}

	key := b.ShowKey()
	claimed := make(map[string]struct{})
	for _, other := range s.bookings {
		if other.ShowKey() == key {
			for _, seat := range other.Seats {
				claimed[seat] = struct{}{}
			}
		}
	}
	if taken := overlap(b.Seats, claimed); len(taken) > 0 {
		return &ConflictError{Seats: taken}
	}

	s.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBooking(b), nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	return s.list(func(b *entity.Booking) bool { return b.UserID == userID }), nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]*entity.Booking, error) {
	return s.list(func(*entity.Booking) bool { return true }), nil
}

func (s *MemoryStore) list(keep func(*entity.Booking) bool) []*entity.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders bookings by creation time, newest first. Ties fall
// back to the id, which is time ordered.
func SortNewestFirst(bookings []*entity.Booking) {
	slices.SortFunc(bookings, func(a, b *entity.Booking) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(b.ID[:], a.ID[:])
	})
}

func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.Seats = slices.Clone(b.Seats)
	if b.CouponCode != nil {
		code := *b.CouponCode
		c.CouponCode = &code
	}
	return &c
}

// overlap returns the seats of requested found in claimed, in request order.
func overlap(requested []string, claimed map[string]struct{}) []string {
	var taken []string
	for _, seat := range requested {
		if _, ok := claimed[seat]; ok {
			taken = append(taken, seat)
		}
	}
	return taken
}
