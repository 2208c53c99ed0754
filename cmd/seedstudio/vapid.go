package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/seedstudio/internal/push"
)

var vapidCmd = &cobra.Command{
	Use:   "vapid",
	Short: "Generate a VAPID key pair for push notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pub, priv, err := push.GenerateVAPIDKeys()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SEEDSTUDIO_PUSH_VAPID_PUBLIC_KEY=%s\nSEEDSTUDIO_PUSH_VAPID_PRIVATE_KEY=%s\n", pub, priv)
		return nil
	},
}
