package store

import "context"

// Store is the persistent key-value store behind session and cart state.
// Values are JSON-encoded. Writes are last-write-wins; keys for distinct
// concerns (token, user, cart-per-identity) never collide.
type Store interface {
	// Get decodes the value stored under key into dst.
	// Returns pkg/errors.ErrNotFound (wrapped) when the key is absent.
	Get(ctx context.Context, key string, dst any) error

	// Set encodes v and stores it under key, overwriting any previous value.
	Set(ctx context.Context, key string, v any) error

	// Delete removes the entry for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Keys used by the storefront. The sr_ prefix predates this client and is
// kept so existing stored state keeps working.
const (
	KeyToken      = "sr_token"
	KeyUser       = "sr_user"
	KeyLegacyCart = "sr_cart" // unkeyed cart from before per-identity partitioning
	KeyAnonID     = "sr_anon_id"
	KeyTheme      = "a11y_preset"

	cartKeyPrefix = "sr_cart:"
)

// CartKey returns the per-identity cart storage key.
func CartKey(identity string) string {
	return cartKeyPrefix + identity
}
