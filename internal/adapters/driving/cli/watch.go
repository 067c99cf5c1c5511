package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mailwatch-cli/internal/logger"
)

var watchToken string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the mailbox push watch",
	Long: `Registers or tears down the Gmail push watch that routes mailbox
change notifications to the configured Pub/Sub topic.

Watches expire after roughly seven days; every fetch cycle renews the
registration, so an explicit "watch start" is only needed once per account.`,
}

var watchStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Register the push watch",
	RunE:  runWatchStart,
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Tear the push watch down",
	RunE:  runWatchStop,
}

func init() {
	watchCmd.PersistentFlags().StringVar(&watchToken, "token", "", "OAuth access token (defaults to the configured account)")
	watchCmd.AddCommand(watchStartCmd)
	watchCmd.AddCommand(watchStopCmd)
	rootCmd.AddCommand(watchCmd)
}

func openWatchMailbox(ctx context.Context) (driven.Mailbox, error) {
	if mailboxFactory == nil {
		return nil, errors.New("mailbox factory not configured")
	}
	return mailboxFactory.Open(ctx, domain.Account{Token: resolveToken(watchToken)})
}

func runWatchStart(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	mailbox, err := openWatchMailbox(ctx)
	if err != nil {
		return err
	}

	email, historyID, err := mailbox.Profile(ctx)
	if err != nil {
		return fmt.Errorf("look up profile: %w", err)
	}

	// Replace any existing registration rather than stacking a second one.
	if err := mailbox.StopWatch(ctx); err != nil {
		logger.Debug("stop previous watch: %v", err)
	}

	expiration, err := mailbox.RenewWatch(ctx)
	if err != nil {
		return fmt.Errorf("start watch: %w", err)
	}

	cmd.Printf("Watching %s (history %d)\n", email, historyID)
	cmd.Printf("Watch expires %s\n", time.UnixMilli(expiration).UTC().Format(time.RFC3339))
	return nil
}

func runWatchStop(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	mailbox, err := openWatchMailbox(ctx)
	if err != nil {
		return err
	}

	if err := mailbox.StopWatch(ctx); err != nil {
		return fmt.Errorf("stop watch: %w", err)
	}

	cmd.Println("Watch stopped.")
	return nil
}
