// Package gmail implements the Mailbox port against the Gmail API.
//
// The adapter maps Gmail wire types onto domain types at the edge:
// history records become tagged HistoryEntry values, message payloads
// become the tagged Part tree, and 404 responses on message resolution
// fold into NotFound stubs. Core services never see a gmail/v1 type.
package gmail
