package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/cli"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Twelve-month balance outlook",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	state, day, err := prepare(cmd)
	if err != nil {
		return err
	}

	points := projection.ProjectMonthly(state, day)

	fmt.Println()
	fmt.Println(cli.RenderTitle("12 MONTH OUTLOOK"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ProjectionTable(points)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.TotalsTable(projection.ComputeTotals(state))))

	return nil
}
