package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/cli"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
)

var (
	flagHorizon int
	flagSample  int
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Sampled daily balance projection",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVar(&flagHorizon, "horizon", projection.DefaultHorizonDays, "Days to simulate, including today")
	dailyCmd.Flags().IntVar(&flagSample, "sample", projection.DefaultSampleEvery, "Keep every Nth day")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if flagHorizon < 1 || flagHorizon > 366 {
		return fmt.Errorf("--horizon must be between 1 and 366: %w", domain.ErrInvalidInput)
	}
	if flagSample < 1 || flagSample > flagHorizon {
		return fmt.Errorf("--sample must be between 1 and --horizon: %w", domain.ErrInvalidInput)
	}

	state, day, err := prepare(cmd)
	if err != nil {
		return err
	}

	points := projection.ProjectDaily(state, day, flagHorizon, flagSample)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY PROJECTION  %dd from %s", flagHorizon, day.Format("2006-01-02"))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ProjectionTable(points)))

	return nil
}
