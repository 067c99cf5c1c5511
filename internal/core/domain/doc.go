// Package domain defines the core business entities for Mailwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Notification: A decoded mailbox push notification
//   - CursorRecord: Per-account sync progress and watch lease state
//   - HistoryEntry: One change-log entry, tagged by change kind
//   - Message: A fully resolved and parsed mail record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
