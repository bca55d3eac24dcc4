package service

import (
	"context"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StateService reads and updates the household budget state
type StateService struct {
	stateRepo      domain.StateRepository
	eventPublisher websocket.EventPublisher
	newID          func() string
}

// NewStateService creates a new StateService
func NewStateService(stateRepo domain.StateRepository) *StateService {
	return &StateService{
		stateRepo: stateRepo,
		newID:     func() string { return uuid.New().String() },
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *StateService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *StateService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// GetState returns the current budget state
func (s *StateService) GetState(ctx context.Context) (*domain.BudgetState, error) {
	return s.stateRepo.GetState(ctx)
}

// UpdateState validates and applies a partial update, returning the stored state.
// An empty patch is a read.
func (s *StateService) UpdateState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	if patch.IsEmpty() {
		return s.stateRepo.GetState(ctx)
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	patch.AssignMissingIDs(s.newID)

	state, err := s.stateRepo.PutState(ctx, patch)
	if err != nil {
		return nil, err
	}

	log.Info().
		Bool("balance", patch.CurrentBalance != nil).
		Bool("credit_cards", patch.CreditCards != nil).
		Bool("expenses", patch.Expenses != nil).
		Bool("incomes", patch.Incomes != nil).
		Msg("Budget state updated")

	s.publishEvent(websocket.StateUpdated(state))
	return state, nil
}
