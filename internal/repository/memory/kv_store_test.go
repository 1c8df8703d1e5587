package memory

import (
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	store := NewKVStore()

	_, err := store.Get(domain.KeyLedger)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(domain.KeyLedger, []byte(`{"a":1}`)))

	got, err := store.Get(domain.KeyLedger)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, store.Delete(domain.KeyLedger))
	_, err = store.Get(domain.KeyLedger)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(domain.KeyLedger))
	assert.NoError(t, store.Close())
}

func TestKVStore_CopiesValues(t *testing.T) {
	store := NewKVStore()
	value := []byte("abc")
	require.NoError(t, store.Set("k", value))

	value[0] = 'z'
	got, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _ := store.Get("k")
	assert.Equal(t, "abc", string(again))
}
