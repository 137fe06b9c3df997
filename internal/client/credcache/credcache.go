// Package credcache persists the minimal credential pair (token and
// username) across client runs, so a session can be re-established
// without re-entering a password. It is a small file-backed key/value
// store: one JSON object of string keys.
package credcache

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

// Entry is a complete cached credential pair.
type Entry struct {
	Token    string
	Username string
}

// Cache reads and writes the credential file at a fixed path.
type Cache struct {
	path string
}

// New returns a Cache backed by the file at path. The file is created
// on the first Save.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Save writes both keys from the given entry, replacing any previous
// contents.
func (c *Cache) Save(e Entry) error {
	data, err := json.Marshal(map[string]string{
		keyToken:    e.Token,
		keyUsername: e.Username,
	})
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Load returns the cached entry and true if a complete pair is present.
// A missing file, an unreadable or malformed file, or an entry with
// either key empty all count as absent.
func (c *Cache) Load() (Entry, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Entry{}, false
	}
	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return Entry{}, false
	}
	e := Entry{Token: kv[keyToken], Username: kv[keyUsername]}
	if e.Token == "" || e.Username == "" {
		return Entry{}, false
	}
	return e, true
}

// Clear wipes the whole cache file. Logout clears everything, not just
// the two known keys.
func (c *Cache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
