package commands

import (
	"fmt"

	"crm/internal/services"

	"github.com/spf13/cobra"
)

// authCmd groups the credential commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API client credentials",
}

// hashSecretCmd prints the bcrypt hash of a client secret
var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret <secret>",
	Short: "Print the bcrypt hash to set as AUTH_CLIENT_SECRET_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := services.HashSecret(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	authCmd.AddCommand(hashSecretCmd)
	rootCmd.AddCommand(authCmd)
}
