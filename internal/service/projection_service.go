package service

import (
	"context"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
)

// ProjectionService loads the current state and runs the balance projector over it
type ProjectionService struct {
	stateRepo domain.StateRepository
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(stateRepo domain.StateRepository) *ProjectionService {
	return &ProjectionService{
		stateRepo: stateRepo,
	}
}

// MonthlyProjection is the twelve month trajectory with the aggregates it was built from
type MonthlyProjection struct {
	Points []domain.ProjectionPoint `json:"points"`
	Totals domain.Totals            `json:"totals"`
}

// Daily returns the sampled day-by-day trajectory starting at today
func (s *ProjectionService) Daily(ctx context.Context, today time.Time, horizonDays, sampleEvery int) ([]domain.ProjectionPoint, error) {
	state, err := s.stateRepo.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return projection.ProjectDaily(state, today, horizonDays, sampleEvery), nil
}

// Month returns the trajectory for the rest of today's month
func (s *ProjectionService) Month(ctx context.Context, today time.Time) ([]domain.ProjectionPoint, error) {
	state, err := s.stateRepo.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return projection.ProjectMonth(state, today), nil
}

// Monthly returns the twelve month trajectory starting with today's month
func (s *ProjectionService) Monthly(ctx context.Context, today time.Time) (*MonthlyProjection, error) {
	state, err := s.stateRepo.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return &MonthlyProjection{
		Points: projection.ProjectMonthly(state, today),
		Totals: projection.ComputeTotals(state),
	}, nil
}
