package file

// Well-known configuration keys. The CLI and the serve listener read these
// to assemble the Gmail and storage wiring.
const (
	// KeyGmailTopic is the Pub/Sub topic watch registrations publish to,
	// in "projects/<project>/topics/<topic>" form.
	KeyGmailTopic = "gmail.topic"

	// KeyGmailWatchLabels restricts watch notifications to these label IDs.
	KeyGmailWatchLabels = "gmail.watch_labels"

	// KeyGmailMaxResults caps the page size of history listings.
	KeyGmailMaxResults = "gmail.max_results"

	// KeyStorageBackend selects the cursor store: "file" or "sqlite".
	KeyStorageBackend = "storage.backend"

	// KeyStoragePath is the cursor store location. For the file backend a
	// JSON file path, for sqlite a data directory.
	KeyStoragePath = "storage.path"

	// KeyPubSubProject and KeyPubSubSubscription identify the push
	// subscription the serve command pulls notifications from.
	KeyPubSubProject      = "pubsub.project"
	KeyPubSubSubscription = "pubsub.subscription"

	// KeyAccountEmail and KeyAccountToken are the default account used
	// when a command is run without explicit credentials.
	KeyAccountEmail = "account.email"
	KeyAccountToken = "account.token"
)

// Unset removes a configuration value and persists immediately. Removing
// an absent key is a no-op.
func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}
