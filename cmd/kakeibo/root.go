package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/cli"
	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
)

var (
	flagFile     string
	flagEndpoint string
	flagMock     bool
	flagDate     string
	flagTimeout  time.Duration
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "kakeibo",
	Short:         "Household balance projections",
	Long:          "Project a household's bank balance from recurring incomes, expenses and credit card payments.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := zerolog.WarnLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "TOML scenario file")
	rootCmd.PersistentFlags().StringVarP(&flagEndpoint, "endpoint", "e", "", "Sheets web app URL")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "Use the built-in sample household")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Project from this date (YYYY-MM-DD), default today")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "Sheets request timeout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log requests to stderr")
}

// loadState is the shared data loading path used by all commands.
func loadState(ctx context.Context) (*domain.BudgetState, error) {
	return cli.LoadState(ctx, cli.Source{
		File:     flagFile,
		Endpoint: flagEndpoint,
		Mock:     flagMock,
		Timeout:  flagTimeout,
	})
}

// today resolves --date in local time.
func today() (time.Time, error) {
	if flagDate == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", flagDate, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", flagDate, domain.ErrInvalidInput)
	}
	return t, nil
}

// prepare loads the state and the projection start date.
func prepare(cmd *cobra.Command) (*domain.BudgetState, time.Time, error) {
	day, err := today()
	if err != nil {
		return nil, time.Time{}, err
	}
	state, err := loadState(cmd.Context())
	if err != nil {
		return nil, time.Time{}, err
	}
	return state, day, nil
}
