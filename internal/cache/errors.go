package cache

import "errors"

var (
	// ErrInvalidKey is returned by Add for keys longer than db.max_key_len. Keys are never truncated.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrInvalidCost is returned by Add for negative costs.
	ErrInvalidCost = errors.New("invalid cache entry cost")

	// ErrUseAfterDestroy is the panic value (wrapped) of any operation on a closed cache.
	ErrUseAfterDestroy = errors.New("cache used after destroy")
)
