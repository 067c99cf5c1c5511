package main

import (
	"fmt"
	"os"

	configfile "github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/config/file"
	filestore "github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mailwatch-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/mailwatch-cli/internal/connectors/google/gmail"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mailwatch-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	cursorStore, err := newCursorStore(configStore)
	if err != nil {
		return fmt.Errorf("open cursor store: %w", err)
	}

	gmailCfg := gmail.DefaultConfig()
	if topic := configStore.GetString(configfile.KeyGmailTopic); topic != "" {
		gmailCfg.TopicName = topic
	}
	if labels := configStore.GetStringSlice(configfile.KeyGmailWatchLabels); len(labels) > 0 {
		gmailCfg.WatchLabelIDs = labels
	}
	if max := configStore.GetInt(configfile.KeyGmailMaxResults); max > 0 {
		gmailCfg.MaxResults = int64(max)
	}

	factory := gmail.NewFactory(gmailCfg)
	fetcher := services.NewFetchService(services.NewReconciler(cursorStore), factory)

	cli.SetConfigStore(configStore)
	cli.SetMailboxFactory(factory)
	cli.SetFetcher(fetcher)

	return cli.Execute()
}

// newCursorStore picks the cursor backend from configuration. The JSON
// file store is the default; sqlite suits long-running serve deployments.
func newCursorStore(cfg driven.ConfigStore) (driven.CursorStore, error) {
	switch cfg.GetString(configfile.KeyStorageBackend) {
	case "sqlite":
		return sqlite.NewCursorStore(cfg.GetString(configfile.KeyStoragePath))
	default:
		return filestore.NewCursorStore(cfg.GetString(configfile.KeyStoragePath))
	}
}
