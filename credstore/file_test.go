package credstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/alefdelta/sacco-client/credstore"
)

func TestFileBackend_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first, err := credstore.NewFileBackend(dir, testSecret)
	require.NoError(t, err)
	require.NoError(t, first.SaveTokens(&oauth2.Token{AccessToken: "AT1", RefreshToken: "RT1"}))

	// a fresh instance over the same folder models a process restart
	second, err := credstore.NewFileBackend(dir, testSecret)
	require.NoError(t, err)

	tok, err := second.LoadTokens()
	require.NoError(t, err)
	require.Equal(t, "AT1", tok.AccessToken)
	require.Equal(t, "RT1", tok.RefreshToken)
}

func TestFileBackend_WrongSecret(t *testing.T) {
	dir := t.TempDir()

	first, err := credstore.NewFileBackend(dir, testSecret)
	require.NoError(t, err)
	require.NoError(t, first.SaveTokens(&oauth2.Token{AccessToken: "AT1"}))

	second, err := credstore.NewFileBackend(dir, "another-secret")
	require.NoError(t, err)

	_, err = second.LoadTokens()
	require.Error(t, err)
	require.Contains(t, err.Error(), "corrupt or secret changed")
}

func TestFileBackend_AbsentRecords(t *testing.T) {
	backend, err := credstore.NewFileBackend(t.TempDir(), testSecret)
	require.NoError(t, err)

	tok, err := backend.LoadTokens()
	require.NoError(t, err)
	require.Nil(t, tok)

	snap, err := backend.LoadSnapshot()
	require.NoError(t, err)
	require.Nil(t, snap)

	// clearing nothing is not an error
	require.NoError(t, backend.ClearTokens())
	require.NoError(t, backend.ClearSnapshot())
}

func TestNewFileBackend_RequiresSecret(t *testing.T) {
	_, err := credstore.NewFileBackend(t.TempDir(), "")
	require.Error(t, err)
}
