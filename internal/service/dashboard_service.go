package service

import (
	"context"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
)

// DashboardService handles dashboard-related business logic
type DashboardService struct {
	stateRepo domain.StateRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stateRepo domain.StateRepository) *DashboardService {
	return &DashboardService{
		stateRepo: stateRepo,
	}
}

// GetSummary returns the financial summary for the month containing today
func (s *DashboardService) GetSummary(ctx context.Context, today time.Time) (*domain.FinancialSummary, error) {
	state, err := s.stateRepo.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return projection.Summarize(state, today), nil
}
