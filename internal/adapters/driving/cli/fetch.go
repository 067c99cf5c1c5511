package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

var (
	fetchEmail         string
	fetchToken         string
	fetchHistoryID     uint64
	fetchEnvelopePath  string
	fetchKinds         []string
	fetchAddedLabels   []string
	fetchRemovedLabels []string
	fetchWithLabels    []string
	fetchWithoutLabels []string
	fetchNoAttachments bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one fetch cycle from a push notification",
	Long: `Runs a single reconciliation cycle: renews the watch lease, diffs the
mailbox history since the last seen point, resolves and parses the changed
messages and prints them as JSON.

The notification can come from a raw Pub/Sub push envelope (--envelope,
use "-" for stdin) or be synthesised from --email and --history-id.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchEmail, "email", "", "Account email address")
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "OAuth access token (defaults to the configured account)")
	fetchCmd.Flags().Uint64Var(&fetchHistoryID, "history-id", 0, "Notification history ID")
	fetchCmd.Flags().StringVar(&fetchEnvelopePath, "envelope", "", "Path to a Pub/Sub push envelope JSON, or - for stdin")
	fetchCmd.Flags().StringSliceVar(&fetchKinds, "kinds", nil, "Change kinds to keep (messageAdded, messageDeleted, labelAdded, labelRemoved)")
	fetchCmd.Flags().StringSliceVar(&fetchAddedLabels, "added-labels", nil, "Keep labelAdded entries touching any of these label IDs")
	fetchCmd.Flags().StringSliceVar(&fetchRemovedLabels, "removed-labels", nil, "Keep labelRemoved entries touching any of these label IDs")
	fetchCmd.Flags().StringSliceVar(&fetchWithLabels, "with-labels", nil, "Keep only messages carrying any of these label IDs")
	fetchCmd.Flags().StringSliceVar(&fetchWithoutLabels, "without-labels", nil, "Drop messages carrying any of these label IDs")
	fetchCmd.Flags().BoolVar(&fetchNoAttachments, "no-attachments", false, "Skip downloading attachment payloads")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if fetchService == nil {
		return errors.New("fetch service not configured")
	}

	notification, err := fetchNotification(cmd)
	if err != nil {
		return err
	}

	opts := domain.FetchOptions{
		Notification:    notification,
		Token:           resolveToken(fetchToken),
		HistoryKinds:    toHistoryKinds(fetchKinds),
		AddedLabelIDs:   fetchAddedLabels,
		RemovedLabelIDs: fetchRemovedLabels,
		WithLabelIDs:    fetchWithLabels,
		WithoutLabelIDs: fetchWithoutLabels,
	}

	ctx := context.Background()
	var messages []domain.Message
	if fetchNoAttachments {
		messages, err = fetchService.FetchWithoutAttachments(ctx, opts)
	} else {
		messages, err = fetchService.Fetch(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	out, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

// fetchNotification builds the notification from either the envelope flag
// or the email/history-id pair.
func fetchNotification(cmd *cobra.Command) (*domain.Notification, error) {
	if fetchEnvelopePath != "" {
		var (
			raw []byte
			err error
		)
		if fetchEnvelopePath == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(fetchEnvelopePath)
		}
		if err != nil {
			return nil, fmt.Errorf("read envelope: %w", err)
		}
		return domain.DecodeNotification(raw)
	}

	if fetchEmail == "" || fetchHistoryID == 0 {
		return nil, errors.New("provide --envelope, or both --email and --history-id")
	}
	return &domain.Notification{EmailAddress: fetchEmail, HistoryID: fetchHistoryID}, nil
}

func toHistoryKinds(vals []string) []domain.HistoryKind {
	if len(vals) == 0 {
		return nil
	}
	kinds := make([]domain.HistoryKind, 0, len(vals))
	for _, v := range vals {
		kinds = append(kinds, domain.HistoryKind(v))
	}
	return kinds
}

// resolveToken prefers the flag, then the environment, then the configured
// default account.
func resolveToken(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("MAILWATCH_TOKEN"); env != "" {
		return env
	}
	if configStore != nil {
		return configStore.GetString(configfile.KeyAccountToken)
	}
	return ""
}
