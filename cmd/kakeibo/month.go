package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/cli"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Day-by-day balance until the end of this month",
	RunE:  runMonth,
}

func init() {
	rootCmd.AddCommand(monthCmd)
}

func runMonth(cmd *cobra.Command, _ []string) error {
	state, day, err := prepare(cmd)
	if err != nil {
		return err
	}

	points := projection.ProjectMonth(state, day)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("THIS MONTH  %s", day.Format("2006-01"))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.ProjectionTable(points)))

	return nil
}
