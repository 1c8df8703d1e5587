package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*KVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "economize.db")
	store, err := NewKVStore(path)
	require.NoError(t, err)
	return store, path
}

func TestKVStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	defer store.Close()

	_, err := store.Get(domain.KeyAccounts)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(domain.KeyAccounts, []byte(`[{"id":"1","name":"ana","password":"1234"}]`)))
	require.NoError(t, store.Set(domain.KeyAccounts, []byte(`[]`)))

	got, err := store.Get(domain.KeyAccounts)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, store.Delete(domain.KeyAccounts))
	_, err = store.Get(domain.KeyAccounts)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	assert.NoError(t, store.Delete(domain.KeyAccounts))
}

func TestKVStore_ReopenKeepsDataAndMigrationsAreIdempotent(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Set(domain.KeyLedger, []byte(`{"emergencyFund":"5"}`)))
	require.NoError(t, store.Close())

	reopened, err := NewKVStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(domain.KeyLedger)
	require.NoError(t, err)
	assert.JSONEq(t, `{"emergencyFund":"5"}`, string(got))
}
