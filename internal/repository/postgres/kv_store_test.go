package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to TEST_DATABASE_URL; the tests skip without it
func newTestStore(t *testing.T) *KVStore {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)

	store, err := NewKVStore(pool)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, key := range []string{domain.KeyAccounts, domain.KeySession, domain.KeyLedger} {
			_ = store.Delete(key)
		}
		store.Close()
	})
	return store
}

func TestKVStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(domain.KeySession)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(domain.KeySession, []byte(`{"id":"u1","name":"alice"}`)))
	require.NoError(t, store.Set(domain.KeySession, []byte(`{"id":"u2","name":"bob"}`)))

	got, err := store.Get(domain.KeySession)
	require.NoError(t, err)

	var session domain.Session
	require.NoError(t, json.Unmarshal(got, &session))
	assert.Equal(t, domain.Session{ID: "u2", Name: "bob"}, session)

	require.NoError(t, store.Delete(domain.KeySession))
	_, err = store.Get(domain.KeySession)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKVStore_RejectsInvalidJSON(t *testing.T) {
	store := newTestStore(t)

	err := store.Set(domain.KeyLedger, []byte(`not json`))
	assert.Error(t, err)
}
