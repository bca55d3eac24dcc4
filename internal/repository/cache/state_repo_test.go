package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-memory Cache for tests
type mapCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	failGet error
	failSet error
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, false, m.failGet
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.values[key] = value
	return nil
}

func (m *mapCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func setupCachedRepository() (*StateRepository, *testutil.MockStateRepository, *mapCache) {
	backing := testutil.NewMockStateRepository()
	backing.SetState(testutil.ReferenceHousehold())
	c := newMapCache()
	return NewStateRepository(backing, c, time.Minute), backing, c
}

func TestStateRepository_ReadsThroughOnce(t *testing.T) {
	repo, backing, _ := setupCachedRepository()
	ctx := context.Background()

	first, err := repo.GetState(ctx)
	require.NoError(t, err)
	second, err := repo.GetState(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.GetCalls)
	assert.True(t, second.CurrentBalance.Equal(first.CurrentBalance))
	assert.Len(t, second.Incomes, 2)
	assert.Equal(t, "i2", second.Incomes[1].ID)
}

func TestStateRepository_WriteRefreshesSnapshot(t *testing.T) {
	repo, backing, _ := setupCachedRepository()
	ctx := context.Background()

	_, err := repo.GetState(ctx)
	require.NoError(t, err)

	balance := decimal.NewFromInt(42)
	_, err = repo.PutState(ctx, &domain.StatePatch{CurrentBalance: &balance})
	require.NoError(t, err)

	state, err := repo.GetState(ctx)
	require.NoError(t, err)
	assert.True(t, state.CurrentBalance.Equal(balance))
	assert.Equal(t, 1, backing.GetCalls)
}

func TestStateRepository_FailedWriteInvalidates(t *testing.T) {
	repo, backing, c := setupCachedRepository()
	ctx := context.Background()

	_, err := repo.GetState(ctx)
	require.NoError(t, err)
	require.Contains(t, c.values, StateKey)

	backing.PutFn = func(context.Context, *domain.StatePatch) (*domain.BudgetState, error) {
		return nil, domain.ErrFetch
	}
	balance := decimal.NewFromInt(1)
	_, err = repo.PutState(ctx, &domain.StatePatch{CurrentBalance: &balance})

	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.NotContains(t, c.values, StateKey)
}

func TestStateRepository_CacheOutageFallsThrough(t *testing.T) {
	repo, backing, c := setupCachedRepository()
	c.failGet = errors.New("connection refused")
	c.failSet = errors.New("connection refused")

	state, err := repo.GetState(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Expenses, 1)
	assert.Equal(t, 1, backing.GetCalls)
}

func TestStateRepository_CorruptSnapshotIsReloaded(t *testing.T) {
	repo, backing, c := setupCachedRepository()
	c.values[StateKey] = []byte("{not json")

	state, err := repo.GetState(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.CreditCards, 1)
	assert.Equal(t, 1, backing.GetCalls)
}

// slowReadStore takes a snapshot when GetState starts and returns it only
// once release is closed
type slowReadStore struct {
	mu      sync.Mutex
	state   *domain.BudgetState
	reading chan struct{}
	release chan struct{}
}

func (s *slowReadStore) GetState(ctx context.Context) (*domain.BudgetState, error) {
	s.mu.Lock()
	snapshot := s.state.Clone()
	s.mu.Unlock()

	close(s.reading)
	<-s.release
	return snapshot, nil
}

func (s *slowReadStore) PutState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = patch.Apply(s.state)
	return s.state.Clone(), nil
}

func TestStateRepository_SlowReadDoesNotOverwriteNewerWrite(t *testing.T) {
	backing := &slowReadStore{
		state:   domain.NewBudgetState(),
		reading: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := newMapCache()
	repo := NewStateRepository(backing, c, time.Minute)
	ctx := context.Background()

	readDone := make(chan *domain.BudgetState)
	go func() {
		state, err := repo.GetState(ctx)
		assert.NoError(t, err)
		readDone <- state
	}()

	<-backing.reading
	balance := decimal.NewFromInt(999)
	_, err := repo.PutState(ctx, &domain.StatePatch{CurrentBalance: &balance})
	require.NoError(t, err)

	close(backing.release)
	stale := <-readDone
	assert.True(t, stale.CurrentBalance.IsZero())

	state, err := repo.GetState(ctx)
	require.NoError(t, err)
	assert.True(t, state.CurrentBalance.Equal(balance), "cached balance %s", state.CurrentBalance)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	rc, err := NewRedisCache(ctx, RedisOptions{Addr: addr})
	require.NoError(t, err)
	defer rc.Close()

	key := "kakeibo:test:" + time.Now().Format(time.RFC3339Nano)
	_, ok, err := rc.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rc.Set(ctx, key, []byte("v"), time.Minute))
	val, ok, err := rc.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, rc.Delete(ctx, key))
}
