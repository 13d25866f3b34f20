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
	"github.com/nberard/wanaplay-booker/internal/reminder"
	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

func newRemindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send a daily Telegram summary of today's bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}
			if err := cfg.RequireTelegram(); err != nil {
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

			r := &reminder.Reminder{
				Client:   wanaplay.NewClient(cfg.Endpoint),
				Creds:    wanaplay.NewCredentials(cfg.Login, cfg.Password),
				BotToken: cfg.BotToken,
				ChatID:   cfg.ChatID,
				Clock:    clock,
				Log:      log,
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
