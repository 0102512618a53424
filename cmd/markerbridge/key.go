package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markerbridge/markerbridge/internal/credentials"
)

func newKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the engine credential stored in the OS keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <api-key>",
		Short: "Store the engine credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.StoreAPIKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "api key stored")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored engine credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			credentials.DeleteAPIKey()
			fmt.Fprintln(cmd.OutOrStdout(), "api key removed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a credential is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := credentials.LoadAPIKey()
			switch {
			case errors.Is(err, credentials.ErrNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), "no api key stored")
			case err != nil:
				return err
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "api key stored")
			}
			return nil
		},
	})

	return cmd
}
