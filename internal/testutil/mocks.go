package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockStateRepository is an in-memory domain.StateRepository
type MockStateRepository struct {
	State    *domain.BudgetState
	Patches  []*domain.StatePatch
	GetCalls int
	GetFn    func(ctx context.Context) (*domain.BudgetState, error)
	PutFn    func(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error)
	mu       sync.Mutex
}

// NewMockStateRepository creates a MockStateRepository holding an empty state
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{
		State:   domain.NewBudgetState(),
		Patches: make([]*domain.StatePatch, 0),
	}
}

// GetState returns a copy of the stored state
func (m *MockStateRepository) GetState(ctx context.Context) (*domain.BudgetState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return m.State.Clone(), nil
}

// PutState applies the patch and returns the new state
func (m *MockStateRepository) PutState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Patches = append(m.Patches, patch)
	if m.PutFn != nil {
		return m.PutFn(ctx, patch)
	}
	m.State = patch.Apply(m.State)
	return m.State.Clone(), nil
}

// SetState replaces the stored state (helper for tests)
func (m *MockStateRepository) SetState(state *domain.BudgetState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.State = state.Clone()
}

// FailWith makes every call return err
func (m *MockStateRepository) FailWith(err error) {
	m.GetFn = func(context.Context) (*domain.BudgetState, error) { return nil, err }
	m.PutFn = func(context.Context, *domain.StatePatch) (*domain.BudgetState, error) { return nil, err }
}

// MockBackupRepository records uploaded objects in memory
type MockBackupRepository struct {
	Objects  map[string][]byte
	Types    map[string]string
	UploadFn func(key string) error
	mu       sync.Mutex
}

// NewMockBackupRepository creates a new MockBackupRepository
func NewMockBackupRepository() *MockBackupRepository {
	return &MockBackupRepository{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

// Upload stores the object body under key
func (m *MockBackupRepository) Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		if err := m.UploadFn(key); err != nil {
			return "", err
		}
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = body
	m.Types[key] = contentType
	return key, nil
}

// GeneratePresignedURL returns a fake URL for key
func (m *MockBackupRepository) GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://backups.example.test/%s?expires=%d", key, int(expiry.Seconds())), nil
}

// Count returns the number of stored objects
func (m *MockBackupRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

// MockEventPublisher captures published events
type MockEventPublisher struct {
	Events []websocket.Event
	mu     sync.Mutex
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{Events: make([]websocket.Event, 0)}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the type of every recorded event in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}

// ReferenceHousehold returns the household used across tests: 100000 on hand,
// salary on the 25th, rent on the 5th, one card paid on the 15th and a
// non-recurring bonus
func ReferenceHousehold() *domain.BudgetState {
	return &domain.BudgetState{
		CurrentBalance: decimal.NewFromInt(100000),
		CreditCards: []domain.CreditCard{
			{ID: "c1", Name: "JCB", CreditLimit: decimal.NewFromInt(200000), AnchorDay: 15, CurrentBalance: decimal.NewFromInt(50000)},
		},
		Expenses: []domain.Expense{
			{ID: "e1", Name: "Rent", Amount: decimal.NewFromInt(80000), AnchorDay: 5, IsRecurring: true},
		},
		Incomes: []domain.Income{
			{ID: "i1", Name: "Salary", Amount: decimal.NewFromInt(280000), AnchorDay: 25, IsRecurring: true},
			{ID: "i2", Name: "Summer bonus", Amount: decimal.NewFromInt(500000), AnchorDay: 15, IsRecurring: false},
		},
	}
}
