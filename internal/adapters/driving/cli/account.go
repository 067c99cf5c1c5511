package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/config/file"
)

var accountSetToken string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the default account",
	Long: `Stores the account commands fall back to when run without --token.
The token is an OAuth access token with the gmail.readonly scope.`,
	RunE: runAccountShow,
}

var accountSetCmd = &cobra.Command{
	Use:   "set <email>",
	Short: "Set the default account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountSet,
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the default account",
	RunE:  runAccountShow,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Forget the default account",
	RunE:  runAccountRemove,
}

func init() {
	accountSetCmd.Flags().StringVar(&accountSetToken, "token", "", "OAuth access token for the account")
	accountCmd.AddCommand(accountSetCmd)
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountRemoveCmd)
	rootCmd.AddCommand(accountCmd)
}

func runAccountSet(_ *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if accountSetToken == "" {
		return errors.New("--token is required")
	}

	if err := configStore.Set(configfile.KeyAccountEmail, args[0]); err != nil {
		return fmt.Errorf("store account email: %w", err)
	}
	if err := configStore.Set(configfile.KeyAccountToken, accountSetToken); err != nil {
		return fmt.Errorf("store account token: %w", err)
	}
	return nil
}

func runAccountShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	email := configStore.GetString(configfile.KeyAccountEmail)
	if email == "" {
		cmd.Println("No default account configured.")
		return nil
	}

	cmd.Printf("Email: %s\n", email)
	cmd.Printf("Token: %s\n", maskToken(configStore.GetString(configfile.KeyAccountToken)))
	return nil
}

func runAccountRemove(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(configfile.KeyAccountEmail, ""); err != nil {
		return fmt.Errorf("clear account email: %w", err)
	}
	if err := configStore.Set(configfile.KeyAccountToken, ""); err != nil {
		return fmt.Errorf("clear account token: %w", err)
	}
	cmd.Println("Default account removed.")
	return nil
}

// maskToken hides all but the last four characters.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
