// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CursorStore: Per-account cursor/lease persistence
//   - Mailbox: The mail provider's change feed, records and watch lease
//   - MailboxFactory: Opens a Mailbox for one account's credentials
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
