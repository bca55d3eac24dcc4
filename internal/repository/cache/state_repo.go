package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// StateKey is the cache key holding the state snapshot
const StateKey = "kakeibo:state"

// StateRepository wraps another domain.StateRepository with a write-through cache.
// Cache failures are logged and fall through to the wrapped repository.
// A read that overlaps a write never refills the cache: every write bumps
// gen, and a fill is only stored if gen is unchanged since its read began.
type StateRepository struct {
	next  domain.StateRepository
	cache Cache
	ttl   time.Duration

	mu  sync.Mutex
	gen uint64
}

// NewStateRepository creates a caching StateRepository
func NewStateRepository(next domain.StateRepository, cache Cache, ttl time.Duration) *StateRepository {
	return &StateRepository{next: next, cache: cache, ttl: ttl}
}

// GetState returns the cached snapshot, loading it on a miss
func (r *StateRepository) GetState(ctx context.Context) (*domain.BudgetState, error) {
	data, ok, err := r.cache.Get(ctx, StateKey)
	if err != nil {
		log.Warn().Err(err).Msg("State cache read failed")
	}
	if ok {
		var state domain.BudgetState
		decodeErr := json.Unmarshal(data, &state)
		if decodeErr == nil {
			return state.Clone(), nil
		}
		log.Warn().Err(decodeErr).Msg("Discarding unreadable state snapshot")
	}

	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	state, err := r.next.GetState(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == gen {
		r.store(ctx, state)
	}
	return state, nil
}

// PutState writes through to the wrapped repository and refreshes the snapshot
func (r *StateRepository) PutState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	state, err := r.next.PutState(ctx, patch)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++

	if err != nil {
		if delErr := r.cache.Delete(ctx, StateKey); delErr != nil {
			log.Warn().Err(delErr).Msg("State cache invalidation failed")
		}
		return nil, err
	}
	r.store(ctx, state)
	return state, nil
}

func (r *StateRepository) store(ctx context.Context, state *domain.BudgetState) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Warn().Err(err).Msg("State snapshot encode failed")
		return
	}
	if err := r.cache.Set(ctx, StateKey, data, r.ttl); err != nil {
		log.Warn().Err(err).Msg("State cache write failed")
	}
}
