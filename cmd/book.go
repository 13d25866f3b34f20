package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nberard/wanaplay-booker/internal/booker"
	"github.com/nberard/wanaplay-booker/internal/config"
	"github.com/nberard/wanaplay-booker/internal/logging"
	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

func newBookCmd() *cobra.Command {
	var weekday, courtTime string

	c := &cobra.Command{
		Use:   "book",
		Short: "Book a court when available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}
			target, err := booker.NewTargetSpec(weekday, courtTime)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			clock := booker.SystemClock()
			if cfg.FakeDate != nil {
				clock = booker.FixedClock(*cfg.FakeDate)
			}

			s := &booker.Scheduler{
				Client: wanaplay.NewClient(cfg.Endpoint),
				Creds:  wanaplay.NewCredentials(cfg.Login, cfg.Password),
				Target: target,
				Clock:  clock,
				Log:    log,
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	c.Flags().StringVarP(&weekday, "weekday", "w", "", "week day to book")
	c.Flags().StringVarP(&courtTime, "court-time", "c", "", "court time (HH:MM)")
	_ = c.MarkFlagRequired("weekday")
	_ = c.MarkFlagRequired("court-time")
	return c
}
