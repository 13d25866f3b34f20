package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nberard/wanaplay-booker/internal/config"
	"github.com/nberard/wanaplay-booker/internal/logging"
	"github.com/nberard/wanaplay-booker/internal/wanaplay"
	"github.com/nberard/wanaplay-booker/internal/watchers"
)

func newProxyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "proxy",
		Short: "Run the watcher control-plane API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}
			if err := cfg.RequireCompose(); err != nil {
				return err
			}

			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			// Fail early when the service list is unreadable.
			compose, err := watchers.LoadCompose(cfg.ComposeFilePath)
			if err != nil {
				return err
			}

			s := &watchers.Server{
				ComposePath: compose.Path(),
				Image:       cfg.BookerImage,
				Login:       cfg.Login,
				Password:    cfg.Password,
				Deployer:    watchers.NewDeployer(compose.Path()),
				Client:      wanaplay.NewClient(cfg.Endpoint),
				Log:         log,
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			srv := &http.Server{Addr: cfg.ListenAddr, Handler: s.Routes()}
			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Info("control plane listening", zap.String("addr", cfg.ListenAddr))
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
