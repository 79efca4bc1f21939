// Package session keeps the per-visitor key/value bag that binds an anonymous
// browser session to its cart.
package session

import (
	"context"
	"errors"
)

// CartTokenKey is the single entry the storefront keeps in a visitor's bag.
const CartTokenKey = "cart_token"

var ErrLockTimeout = errors.New("session: lock not acquired")

type Store interface {
	// Get returns "" when the key is absent.
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
	// Lock serialises check-then-act sequences on one session. The returned
	// func releases the lock and is safe to call once.
	Lock(ctx context.Context, sessionID string) (func(), error)
}
