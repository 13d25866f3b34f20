package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wanaplay",
		Short:         "Books a recurring wanaplay court the instant its calendar opens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newBookCmd())
	root.AddCommand(newBookingsCmd())
	root.AddCommand(newProxyCmd())
	root.AddCommand(newRemindCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		for e := err; e != nil; e = errors.Unwrap(e) {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
}
