// Package identity resolves the current user once per process and hands the
// result to anyone who asks, now or later.
package identity

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"agentchat-cli/internal/observability"
)

// UnknownID is used when no identity arrives before the timeout.
const UnknownID = "unknown"

type User struct {
	ID    string
	Email string
}

// Unknown reports whether u is the timeout fallback.
func (u User) Unknown() bool {
	return u.ID == "" || u.ID == UnknownID
}

// Source answers an identity request. It may block until ctx is done.
type Source interface {
	Lookup(ctx context.Context) (User, error)
}

// EnvSource reads AGENTCHAT_EMPLID and AGENTCHAT_EMAIL.
type EnvSource struct{}

func (EnvSource) Lookup(ctx context.Context) (User, error) {
	id := strings.TrimSpace(os.Getenv("AGENTCHAT_EMPLID"))
	if id == "" {
		// Nothing will ever answer; wait for the timeout like a silent host.
		<-ctx.Done()
		return User{}, ctx.Err()
	}
	return User{ID: id, Email: strings.TrimSpace(os.Getenv("AGENTCHAT_EMAIL"))}, nil
}

// Context holds the single resolution of the current user.
type Context struct {
	source  Source
	timeout time.Duration

	once    sync.Once
	mu      sync.Mutex
	user    User
	ready   bool
	waiters []func(User)
	done    chan struct{}
}

func New(src Source, timeout time.Duration) *Context {
	return &Context{source: src, timeout: timeout, done: make(chan struct{})}
}

// Start issues the lookup in the background. Later calls are no-ops.
func (c *Context) Start(ctx context.Context) {
	c.once.Do(func() {
		go c.resolve(ctx)
	})
}

func (c *Context) resolve(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := c.source.Lookup(ctx)
	if err != nil || u.ID == "" {
		observability.Logger().Warn("user identity unavailable", "error", err)
		u = User{ID: UnknownID}
	}

	c.mu.Lock()
	c.user = u
	c.ready = true
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()
	close(c.done)

	for _, fn := range waiters {
		fn(u)
	}
}

// Resolve starts the lookup if needed and blocks until it has an answer or
// ctx is done. The fallback user is returned on ctx cancellation.
func (c *Context) Resolve(ctx context.Context) User {
	c.Start(context.WithoutCancel(ctx))
	select {
	case <-c.done:
		u, _ := c.User()
		return u
	case <-ctx.Done():
		return User{ID: UnknownID}
	}
}

// OnReady runs fn with the user immediately if resolved, otherwise once the
// lookup completes.
func (c *Context) OnReady(fn func(User)) {
	c.mu.Lock()
	if c.ready {
		u := c.user
		c.mu.Unlock()
		fn(u)
		return
	}
	c.waiters = append(c.waiters, fn)
	c.mu.Unlock()
}

// User returns the resolved user and whether resolution has finished.
func (c *Context) User() (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.ready
}

// UserID is the id to send with runs, empty while unresolved or unknown.
func (c *Context) UserID(ctx context.Context) string {
	u := c.Resolve(ctx)
	if u.Unknown() {
		return ""
	}
	return u.ID
}
