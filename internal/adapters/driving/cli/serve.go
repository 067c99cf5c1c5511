package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mailwatch-cli/internal/adapters/driving/pubsub"
)

var (
	serveProject      string
	serveSubscription string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Process push notifications as they arrive",
	Long: `Pulls Gmail notifications from the configured Pub/Sub subscription
and runs a fetch cycle for each one, until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveProject, "project", "", "Google Cloud project ID (defaults to pubsub.project)")
	serveCmd.Flags().StringVar(&serveSubscription, "subscription", "", "Pub/Sub subscription name (defaults to pubsub.subscription)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if fetchService == nil {
		return errors.New("fetch service not configured")
	}
	if configStore == nil {
		return errors.New("config store not configured")
	}

	project := serveProject
	if project == "" {
		project = configStore.GetString(configfile.KeyPubSubProject)
	}
	subscription := serveSubscription
	if subscription == "" {
		subscription = configStore.GetString(configfile.KeyPubSubSubscription)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := pubsub.NewListener(ctx, project, subscription, fetchService, configuredTokenFor())
	if err != nil {
		return fmt.Errorf("start listener: %w", err)
	}
	defer listener.Close()

	cmd.Printf("Processing notifications from %s/%s (Ctrl-C to stop)\n", project, subscription)
	return listener.Run(ctx)
}

// configuredTokenFor resolves tokens from the default account. Notifications
// for any other account are dropped.
func configuredTokenFor() pubsub.TokenFunc {
	return func(email string) (string, bool) {
		if configStore.GetString(configfile.KeyAccountEmail) != email {
			return "", false
		}
		token := configStore.GetString(configfile.KeyAccountToken)
		return token, token != ""
	}
}
