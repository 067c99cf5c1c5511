package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/mailwatch-cli/internal/adapters/driven/config/file"
)

func TestServeCmd_RequiresService(t *testing.T) {
	original := fetchService
	fetchService = nil
	defer func() { fetchService = original }()

	_, err := runCLI(t, "serve")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestConfiguredTokenFor(t *testing.T) {
	store := withTestConfigStore(t)
	require.NoError(t, store.Set(configfile.KeyAccountEmail, "user@gmail.com"))
	require.NoError(t, store.Set(configfile.KeyAccountToken, "tok"))

	tokenFor := configuredTokenFor()

	token, ok := tokenFor("user@gmail.com")
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	_, ok = tokenFor("stranger@gmail.com")
	assert.False(t, ok)
}

func TestConfiguredTokenFor_EmptyToken(t *testing.T) {
	store := withTestConfigStore(t)
	require.NoError(t, store.Set(configfile.KeyAccountEmail, "user@gmail.com"))

	_, ok := configuredTokenFor()("user@gmail.com")

	assert.False(t, ok)
}
