// Package store provides debate store implementations.
package store

import (
	"fmt"
	"strings"
)

// NewStoreFromURI creates a debate store for the given URI.
// An empty URI selects the in-memory store; "redis://..." selects Redis.
func NewStoreFromURI(uri string) (Store, error) {
	switch {
	case uri == "":
		return NewInMemoryStore(), nil
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		return NewRedisStore(uri)
	default:
		return nil, fmt.Errorf("unsupported store URI: %s", uri)
	}
}
