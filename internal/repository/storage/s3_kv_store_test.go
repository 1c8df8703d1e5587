package storage

import (
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestS3KVStore_ObjectKey(t *testing.T) {
	store := &S3KVStore{bucket: "b", prefix: "economize/"}

	assert.Equal(t, "economize/financial-data.json", store.ObjectKey(domain.KeyLedger))
	assert.Equal(t, "economize/economize-users.json", store.ObjectKey(domain.KeyAccounts))

	bare := &S3KVStore{bucket: "b"}
	assert.Equal(t, "economize-user.json", bare.ObjectKey(domain.KeySession))
}
