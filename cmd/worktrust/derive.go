package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worktrust/backend/internal/identity"
)

var (
	deriveExternalID string
	deriveEmail      string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the principal for an external identity",
	Long:  `Derive the deterministic on-chain principal for a LinkedIn subject id and email, without any network calls. Useful for support and debugging.`,
	RunE:  runDerive,
}

func init() {
	deriveCmd.Flags().StringVar(&deriveExternalID, "id", "", "External (LinkedIn) subject id")
	deriveCmd.Flags().StringVar(&deriveEmail, "email", "", "Account email address")
	_ = deriveCmd.MarkFlagRequired("id")
	_ = deriveCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, _ []string) error {
	id, err := identity.Derive(deriveExternalID, deriveEmail)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id.Principal)
	return nil
}
