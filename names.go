package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// UnknownUser is shown when no usable name exists for a user.
const UnknownUser = "<Unknown User>"

// User is the profile subset needed to name a winner.
type User struct {
	RealName    string
	DisplayName string
}

// Name picks the best available name for u.
func (u *User) Name() string {
	switch {
	case u == nil:
		return UnknownUser
	case u.RealName != "":
		return u.RealName
	case u.DisplayName != "":
		return u.DisplayName
	}
	return UnknownUser
}

// UserLookup fetches a user profile. A user that does not exist yields
// (nil, nil); errors mean the platform could not answer.
type UserLookup interface {
	LookupUser(ctx context.Context, id string) (*User, error)
}

// NameCache memoizes user id to display name lookups for the lifetime of one
// run. A cached nil entry records "not found" so the user is not queried again.
type NameCache struct {
	lookup UserLookup
	log    *zap.Logger

	mu    sync.Mutex
	users map[string]*User
	group singleflight.Group
}

// NewNameCache returns an empty cache backed by lookup.
func NewNameCache(lookup UserLookup, log *zap.Logger) *NameCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &NameCache{lookup: lookup, log: log, users: make(map[string]*User)}
}

// Resolve returns the display name for id. Lookup failures are logged and
// resolve to UnknownUser without being cached.
func (c *NameCache) Resolve(ctx context.Context, id string) string {
	c.mu.Lock()
	u, ok := c.users[id]
	c.mu.Unlock()
	if ok {
		return u.Name()
	}

	v, err, _ := c.group.Do(id, func() (any, error) {
		c.mu.Lock()
		if u, ok := c.users[id]; ok {
			c.mu.Unlock()
			return u, nil
		}
		c.mu.Unlock()

		u, err := c.lookup.LookupUser(ctx, id)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.users[id] = u
		c.mu.Unlock()
		if u == nil {
			c.log.Debug("user not found", zap.String("user", id))
		}
		return u, nil
	})
	if err != nil {
		c.log.Warn("user lookup failed", zap.String("user", id), zap.Error(err))
		return UnknownUser
	}
	return v.(*User).Name()
}

// ResolveAll resolves ids concurrently and returns names in the same order.
func (c *NameCache) ResolveAll(ctx context.Context, ids []string) []string {
	names := make([]string, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			names[i] = c.Resolve(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
	return names
}
