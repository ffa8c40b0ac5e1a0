package credstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/alefdelta/sacco-client/credstore"
	"github.com/alefdelta/sacco-client/members"
)

const testSecret = "test-credential-secret"

type storeFixture struct {
	store    *credstore.Store
	durable  *credstore.FileBackend
	volatile *credstore.MemoryBackend
}

func setupStore(t *testing.T) *storeFixture {
	t.Helper()

	durable, err := credstore.NewFileBackend(t.TempDir(), testSecret)
	require.NoError(t, err)
	volatile := credstore.NewMemoryBackend()

	store, err := credstore.New(durable, volatile)
	require.NoError(t, err)

	return &storeFixture{store: store, durable: durable, volatile: volatile}
}

func testTokens() *oauth2.Token {
	return &oauth2.Token{AccessToken: "AT1", RefreshToken: "RT1"}
}

func TestWrite_DurableClearsVolatile(t *testing.T) {
	f := setupStore(t)

	require.NoError(t, f.volatile.SaveTokens(&oauth2.Token{AccessToken: "stale"}))
	require.NoError(t, f.store.Write(testTokens(), true))

	tok, err := f.volatile.LoadTokens()
	require.NoError(t, err)
	require.Nil(t, tok)

	tok, err = f.durable.LoadTokens()
	require.NoError(t, err)
	require.Equal(t, "AT1", tok.AccessToken)
	require.Equal(t, "RT1", tok.RefreshToken)
}

func TestWrite_VolatileClearsDurable(t *testing.T) {
	f := setupStore(t)

	require.NoError(t, f.durable.SaveTokens(&oauth2.Token{AccessToken: "stale"}))
	require.NoError(t, f.store.Write(testTokens(), false))

	tok, err := f.durable.LoadTokens()
	require.NoError(t, err)
	require.Nil(t, tok)

	tok, err = f.volatile.LoadTokens()
	require.NoError(t, err)
	require.Equal(t, "AT1", tok.AccessToken)
}

func TestRead_PrefersDurable(t *testing.T) {
	f := setupStore(t)

	// both backends populated, e.g. after tampering; durable must win
	require.NoError(t, f.durable.SaveTokens(&oauth2.Token{AccessToken: "durable-token"}))
	require.NoError(t, f.volatile.SaveTokens(&oauth2.Token{AccessToken: "volatile-token"}))

	tok, fromDurable, err := f.store.Read()
	require.NoError(t, err)
	require.True(t, fromDurable)
	require.Equal(t, "durable-token", tok.AccessToken)
}

func TestRead_FallsBackToVolatile(t *testing.T) {
	f := setupStore(t)

	require.NoError(t, f.volatile.SaveTokens(testTokens()))

	tok, fromDurable, err := f.store.Read()
	require.NoError(t, err)
	require.False(t, fromDurable)
	require.Equal(t, "AT1", tok.AccessToken)
}

func TestRead_Empty(t *testing.T) {
	f := setupStore(t)

	tok, fromDurable, err := f.store.Read()
	require.NoError(t, err)
	require.False(t, fromDurable)
	require.Nil(t, tok)
}

func TestClear_RemovesBothBackendsAndSnapshot(t *testing.T) {
	f := setupStore(t)

	require.NoError(t, f.store.Write(testTokens(), true))
	require.NoError(t, f.store.SaveSnapshot(&credstore.Snapshot{IsAuthenticated: true, RememberMe: true}))
	require.NoError(t, f.volatile.SaveTokens(testTokens()))

	require.NoError(t, f.store.Clear())

	tok, _, err := f.store.Read()
	require.NoError(t, err)
	require.Nil(t, tok)

	snap, err := f.store.LoadSnapshot()
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestSnapshot_Roundtrip(t *testing.T) {
	f := setupStore(t)

	member := &members.Member{ID: "1", MemberID: "MEM-1", FirstName: "Abebe", LastName: "Tadesse"}
	require.NoError(t, f.store.SaveSnapshot(&credstore.Snapshot{
		IsAuthenticated: true,
		Member:          member,
		RememberMe:      true,
	}))

	snap, err := f.store.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, snap.IsAuthenticated)
	require.True(t, snap.RememberMe)
	require.Equal(t, "MEM-1", snap.Member.MemberID)
}

func TestNew_MissingBackends(t *testing.T) {
	durable, err := credstore.NewFileBackend(t.TempDir(), testSecret)
	require.NoError(t, err)

	_, err = credstore.New(nil, credstore.NewMemoryBackend())
	require.Error(t, err)

	_, err = credstore.New(durable, nil)
	require.Error(t, err)
}
