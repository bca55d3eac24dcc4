package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/cli"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/projection"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Balance, monthly totals and credit card status",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	state, day, err := prepare(cmd)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUMMARY  %s", day.Format("2006-01-02"))))
	fmt.Println()
	fmt.Print(cli.RenderSummary(projection.Summarize(state, day)))

	return nil
}
