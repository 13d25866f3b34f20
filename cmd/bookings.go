package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nberard/wanaplay-booker/internal/config"
	"github.com/nberard/wanaplay-booker/internal/wanaplay"
)

func newBookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List the account's confirmed bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			client := wanaplay.NewClient(cfg.Endpoint)
			sess, err := client.Authenticate(cmd.Context(), wanaplay.NewCredentials(cfg.Login, cfg.Password))
			if err != nil {
				return err
			}
			bookings, err := sess.Bookings(cmd.Context())
			if err != nil {
				return err
			}

			if len(bookings) == 0 {
				fmt.Fprintln(os.Stdout, "no bookings found")
				return nil
			}
			for _, b := range bookings {
				fmt.Fprintf(os.Stdout, "%s at %s | court %d\n",
					b.Date.Format("Mon 02/01"), b.CourtTime, b.CourtNumber)
			}
			return nil
		},
	}
}
