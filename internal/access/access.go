// Package access mirrors the server's flat capability list for the current
// session. The server remains authoritative for enforcement; this cache only
// decides which controls the UI offers.
package access

import (
	"context"
	"fmt"
)

// Source fetches the capability list, typically the API client.
type Source interface {
	UserPermissions(ctx context.Context) ([]string, error)
}

// Set is an immutable snapshot of capabilities, keyed "action_model".
type Set struct {
	perms map[string]bool
}

// NewSet builds a snapshot from the server's list.
func NewSet(list []string) Set {
	perms := make(map[string]bool, len(list))
	for _, p := range list {
		perms[p] = true
	}
	return Set{perms: perms}
}

// Has reports whether the session holds action on model, e.g.
// Has("change", "task").
func (s Set) Has(action, model string) bool {
	return s.perms[fmt.Sprintf("%s_%s", action, model)]
}

// CanAdd, CanChange and CanDelete are the checks the board actually uses.
func (s Set) CanAdd(model string) bool    { return s.Has("add", model) }
func (s Set) CanChange(model string) bool { return s.Has("change", model) }
func (s Set) CanDelete(model string) bool { return s.Has("delete", model) }

// Cache holds the capability set for the lifetime of one authenticated
// session: populated at session start, dropped on logout. It is passed
// explicitly rather than looked up ambiently.
type Cache struct {
	source Source
	set    Set
	loaded bool
}

// NewCache returns an empty cache backed by source.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Populate fetches the capability list. Call at authenticated-session start
// or when permissions are known to have changed.
func (c *Cache) Populate(ctx context.Context) error {
	list, err := c.source.UserPermissions(ctx)
	if err != nil {
		return err
	}
	c.set = NewSet(list)
	c.loaded = true
	return nil
}

// Drop invalidates the cache. Call on logout.
func (c *Cache) Drop() {
	c.set = Set{}
	c.loaded = false
}

// Current returns the active set; an unloaded cache grants nothing.
func (c *Cache) Current() Set {
	return c.set
}

// Loaded reports whether Populate has succeeded for this session.
func (c *Cache) Loaded() bool {
	return c.loaded
}
