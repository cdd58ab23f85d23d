package storage

import (
	"fmt"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// Scoped is a view of the store's values under a key prefix. SSH sessions use
// one per user so progress and settings are not shared.
type Scoped struct {
	store  *Store
	prefix string
}

// Scoped returns a view of the values whose keys start with prefix + ":".
func (s *Store) Scoped(prefix string) *Scoped {
	return &Scoped{store: s, prefix: prefix + ":"}
}

// Get returns the value stored under key in this scope.
func (v *Scoped) Get(key string) (string, bool, error) {
	return v.store.Get(v.prefix + key)
}

// Set stores value under key in this scope.
func (v *Scoped) Set(key, value string) error {
	return v.store.Set(v.prefix+key, value)
}

// Delete removes key from this scope.
func (v *Scoped) Delete(key string) error {
	return v.store.Delete(v.prefix + key)
}

// Clear removes every key of this scope and leaves other scopes alone.
// Keys are compared bytewise, so the scope is the range [prefix, upper).
func (v *Scoped) Clear() error {
	upper := v.prefix[:len(v.prefix)-1] + ";" // ':' + 1
	if _, err := v.store.db.Exec("DELETE FROM kv WHERE key >= ? AND key < ?", v.prefix, upper); err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", v.prefix, err)
	}
	return nil
}

var _ engine.KeyValueStore = (*Scoped)(nil)
