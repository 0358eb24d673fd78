package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockMovieRepo struct{ mock.Mock }

func (m *mockMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMovieRepo) FindAll(ctx context.Context, limit, offset int, genre *string) ([]*entity.Movie, error) {
	args := m.Called(ctx, limit, offset, genre)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

func (m *mockMovieRepo) CountAll(ctx context.Context, genre *string) (int64, error) {
	args := m.Called(ctx, genre)
	return args.Get(0).(int64), args.Error(1)
}

type mockScreenRepo struct{ mock.Mock }

func (m *mockScreenRepo) Create(ctx context.Context, screen *entity.Screen) error {
	return m.Called(ctx, screen).Error(0)
}

func (m *mockScreenRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	args := m.Called(ctx, id)
	screen, _ := args.Get(0).(*entity.Screen)
	return screen, args.Error(1)
}

func (m *mockScreenRepo) FindByTheatre(ctx context.Context, theatreID uuid.UUID) ([]*entity.Screen, error) {
	args := m.Called(ctx, theatreID)
	screens, _ := args.Get(0).([]*entity.Screen)
	return screens, args.Error(1)
}

type mockCouponRepo struct{ mock.Mock }

func (m *mockCouponRepo) Create(ctx context.Context, coupon *entity.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *mockCouponRepo) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	args := m.Called(ctx, code)
	coupon, _ := args.Get(0).(*entity.Coupon)
	return coupon, args.Error(1)
}

func (m *mockCouponRepo) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	args := m.Called(ctx)
	coupons, _ := args.Get(0).([]*entity.Coupon)
	return coupons, args.Error(1)
}

func (m *mockCouponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCouponRepo) Redeem(ctx context.Context, code string, bookingID uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, bookingID)
	return args.Bool(0), args.Error(1)
}

// memCache is an in-memory cache.Cache keeping JSON like the Redis one.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type published struct {
	routingKey string
	event      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{routingKey, event})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
