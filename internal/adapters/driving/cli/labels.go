package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

var labelsToken string

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the account's labels",
	Long: `Lists the label IDs of the account. Label IDs are what the fetch
filters take; system labels like INBOX and SENT keep their well-known IDs,
user labels carry opaque ones.`,
	RunE: runLabels,
}

func init() {
	labelsCmd.Flags().StringVar(&labelsToken, "token", "", "OAuth access token (defaults to the configured account)")
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, _ []string) error {
	if fetchService == nil {
		return errors.New("fetch service not configured")
	}

	account := domain.Account{Token: resolveToken(labelsToken)}
	labels, err := fetchService.ListLabels(context.Background(), account)
	if err != nil {
		return fmt.Errorf("list labels: %w", err)
	}

	for _, label := range labels {
		cmd.Printf("%-24s %-8s %s\n", label.ID, label.Type, label.Name)
	}
	return nil
}
