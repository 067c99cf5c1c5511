// Package google provides shared infrastructure for the Gmail connector.
//
// This package contains common utilities used by the gmail package:
//   - A TokenSource adapter turning a per-call access token into an
//     oauth2.TokenSource for Google API clients
//   - A service factory for creating the Gmail API client
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
//	ts := google.NewStaticTokenSource(account.Token)
//	svc, err := google.NewGmailService(ctx, ts)
//
// # OAuth2 Scopes
//
// The connector expects tokens carrying:
//   - https://www.googleapis.com/auth/gmail.readonly (restricted)
//
// Token acquisition and refresh are the caller's concern; the connector
// only consumes access tokens.
package google
