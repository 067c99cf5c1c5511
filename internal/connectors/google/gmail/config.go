package gmail

// Config holds Gmail connector configuration.
type Config struct {
	// TopicName is the fully qualified Pub/Sub topic the watch publishes
	// to, e.g. "projects/my-project/topics/gmail-push".
	TopicName string
	// WatchLabelIDs limits the watch to specific label IDs.
	// If empty, watches INBOX by default.
	WatchLabelIDs []string
	// MaxResults is the page size for history.list requests.
	MaxResults int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WatchLabelIDs: []string{"INBOX"},
		MaxResults:    100,
	}
}
