// Package session tracks who the current visitor is.
//
// A Controller is built for each request from the visitor's token store. It owns
// the token and the resolved user; nothing else writes them.
package session

import (
	"context"
	"log/slog"
	"sync"

	"movie-web/internal/models"
	"movie-web/internal/tokenstore"
)

// State is the lifecycle position of a Controller.
type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// UserResolver turns a bearer token into the profile it belongs to.
// *movieapi.Client satisfies it.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Snapshot is a consistent read of the controller.
type Snapshot struct {
	State      State
	User       *models.User
	Loading    bool
	IsLoggedIn bool
}

// Controller is the auth session state machine.
type Controller struct {
	store    tokenstore.Store
	resolver UserResolver
	logger   *slog.Logger

	mu    sync.Mutex
	state State
	token string
	user  *models.User
	// gen is bumped by every Login and Logout; a resolve started under an older
	// generation must not publish its result.
	gen uint64
}

// New creates a controller in the Uninitialized state.
func New(store tokenstore.Store, resolver UserResolver, logger *slog.Logger) *Controller {
	if store == nil {
		store = tokenstore.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:    store,
		resolver: resolver,
		logger:   logger,
	}
}

// Init restores the session from the token store.
func (c *Controller) Init(ctx context.Context) {
	token, ok := c.store.Get(ctx)

	c.mu.Lock()
	if !ok || token == "" {
		c.state = Anonymous
		c.token = ""
		c.user = nil
		c.mu.Unlock()
		return
	}
	c.state = Loading
	c.token = token
	gen := c.gen
	c.mu.Unlock()

	c.resolve(ctx, gen, token)
}

// Login persists token and resolves the user it belongs to.
func (c *Controller) Login(ctx context.Context, token string) {
	if err := c.store.Save(ctx, token); err != nil {
		c.logger.Warn("failed to persist token", "error", err)
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = Loading
	c.token = token
	c.user = nil
	c.mu.Unlock()

	c.resolve(ctx, gen, token)
}

// Logout forgets the token and the user. It makes no API call and may be
// called any number of times.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.Remove(ctx); err != nil {
		c.logger.Warn("failed to remove token", "error", err)
	}

	c.mu.Lock()
	c.gen++
	c.state = Anonymous
	c.token = ""
	c.user = nil
	c.mu.Unlock()
}

func (c *Controller) resolve(ctx context.Context, gen uint64, token string) {
	var (
		user *models.User
		err  = errNoResolver
	)
	if c.resolver != nil {
		user, err = c.resolver.CurrentUser(ctx, token)
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale session resolve", "generation", gen)
		return
	}
	if err == nil && user != nil {
		c.state = Authenticated
		c.user = user
		c.mu.Unlock()
		return
	}
	c.state = Anonymous
	c.token = ""
	c.user = nil
	c.mu.Unlock()

	c.logger.Info("stored token rejected, clearing session", "error", err)
	if rmErr := c.store.Remove(ctx); rmErr != nil {
		c.logger.Warn("failed to remove token", "error", rmErr)
	}
}

// Snapshot returns the current state, user and derived flags together.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:      c.state,
		User:       c.user,
		Loading:    c.state == Loading,
		IsLoggedIn: c.user != nil,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// User is the resolved profile, or nil.
func (c *Controller) User() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Token is the bearer token of an authenticated session, or "".
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return ""
	}
	return c.token
}

func (c *Controller) IsLoggedIn() bool {
	return c.User() != nil
}

func (c *Controller) Loading() bool {
	return c.State() == Loading
}
