package domain

// Logical keys of the persisted area
const (
	KeyAccounts = "economize-users"
	KeySession  = "economize-user"
	KeyLedger   = "financial-data"
)

// KeyValueStore is the persisted area backing accounts, session and ledger.
// Get returns ErrKeyNotFound when the key is absent; Delete of an absent key is not an error.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
