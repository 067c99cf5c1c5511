package google

import "golang.org/x/oauth2"

// NewStaticTokenSource wraps a bare access token in an oauth2.TokenSource
// for use with option.WithTokenSource() when creating Google API services.
//
// Mailwatch receives a ready access token on every call, so no refresh
// happens here; an expired token surfaces as ErrUnauthorized from the API.
func NewStaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
