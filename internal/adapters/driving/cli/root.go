// Package cli implements the mailwatch command line interface. Commands
// hold no business logic: they parse flags, call the driving ports and
// print results. Services are injected by the composition root through
// the Set* functions before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mailwatch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mailwatch-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Nil checks in each command give a clear error when
// the composition root failed to wire something.
var (
	fetchService   driving.Fetcher
	mailboxFactory driven.MailboxFactory
	configStore    driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "mailwatch",
	Short: "Watch Gmail mailboxes and fetch what changed",
	Long: `mailwatch registers push watches on Gmail mailboxes and turns the
resulting notifications into fully parsed message records.

A typical flow: register a watch with "mailwatch watch start", then run
"mailwatch serve" to process notifications as they arrive, or feed a
single notification through "mailwatch fetch".`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetFetcher injects the fetch service.
func SetFetcher(f driving.Fetcher) {
	fetchService = f
}

// SetMailboxFactory injects the mailbox factory used by watch commands.
func SetMailboxFactory(f driven.MailboxFactory) {
	mailboxFactory = f
}

// SetConfigStore injects the application settings store.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
