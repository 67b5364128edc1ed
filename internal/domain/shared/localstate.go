package shared

import "context"

// LocalStore is the key-value port backing all terminal-local persisted state:
// the session snapshot, draft payloads, the access token and UI settings.
// Implementations are last-writer-wins; callers must choose non-colliding keys.
type LocalStore interface {
	// Get returns the raw value stored under key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has reports whether the key is present.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases resources held by the store.
	Close() error
}

// Well-known local store keys. These names form the persisted-state contract
// shared with other front-ends of the same product and must not be renamed.
const (
	KeyAccessToken          = "accessToken"
	KeySettings             = "settings"
	KeyCurrentPDVID         = "current_pdv_id"
	KeyLastClosedRegisterID = "last_closed_register_id"
	KeySaleWindows          = "pos_sale_windows"
)
