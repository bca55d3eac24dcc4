package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/cli"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		flagFile, flagEndpoint, flagDate = "", "", ""
		flagMock = false
		flagHorizon, flagSample = 90, 10
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestDaily_RejectsHorizonOutOfRange(t *testing.T) {
	err := execute(t, "daily", "--mock", "--horizon", "400")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDaily_RejectsSampleAboveHorizon(t *testing.T) {
	err := execute(t, "daily", "--mock", "--horizon", "5", "--sample", "6")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMonth_RejectsBadDate(t *testing.T) {
	err := execute(t, "month", "--mock", "--date", "2026/04/10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummary_RequiresSource(t *testing.T) {
	err := execute(t, "summary")
	assert.ErrorIs(t, err, cli.ErrNoSource)
}

func TestCommands_RunAgainstMockHousehold(t *testing.T) {
	for _, args := range [][]string{
		{"daily", "--mock", "--date", "2026-04-10", "--horizon", "30", "--sample", "7"},
		{"month", "--mock", "--date", "2026-04-10"},
		{"monthly", "--mock", "--date", "2026-04-10"},
		{"summary", "--mock", "--date", "2026-04-10"},
	} {
		assert.NoError(t, execute(t, args...), args[0])
	}
}
