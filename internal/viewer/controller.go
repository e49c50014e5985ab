package viewer

import (
	"context"
	"log/slog"
	"sync"
)

// Hooks observe state transitions. All run with the controller locked and
// must not call back into it.
type Hooks struct {
	// Leave runs when a navigation starts, before loading begins
	Leave func(from, to Route)
	// Commit runs after a load result has been committed
	Commit func(s State)
	// Ambient reports the background to pair with the current state
	Ambient func() string
}

// Frame is what gets rendered: a state snapshot plus the ambient background
type Frame struct {
	State
	Background string
}

// Controller owns one State and serialises every mutation to it. Each
// Navigate takes a new generation; a load whose generation is no longer the
// latest when it finishes is discarded.
type Controller struct {
	loader *Loader
	log    *slog.Logger
	hooks  Hooks

	mu     sync.Mutex
	latest uint64
	state  State
}

func NewController(loader *Loader, log *slog.Logger, hooks Hooks) *Controller {
	return &Controller{
		loader: loader,
		log:    log,
		hooks:  hooks,
		state:  newState(HomeRoute()),
	}
}

// Navigate loads r and commits the result if no newer navigation started in
// the meantime. It returns the frame after the attempt and whether this
// navigation is still the current one.
//
// Cancelling ctx does not abort the queries; a superseded load is only ever
// neutralised by its generation.
func (c *Controller) Navigate(ctx context.Context, r Route) (Frame, bool) {
	gen := c.begin(r)
	res := c.loader.Load(context.WithoutCancel(ctx), r)
	return c.commit(gen, res)
}

// Generation is the token of the most recent navigation
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

// Frame returns a copy of the current state with its background
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame()
}

// Showing reports whether r has been navigated to and finished loading
func (c *Controller) Showing(r Route) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.latest > 0 && c.state.Route == r && !c.state.Loading
	return c.frame(), ok
}

// SetFilter selects a category id, or AllCategories. It never loads.
func (c *Controller) SetFilter(categoryID string) Frame {
	if categoryID == "" {
		categoryID = AllCategories
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = categoryID
	return c.frame()
}

// SetQuery sets the home search text. It never loads.
func (c *Controller) SetQuery(q string) Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = q
	return c.frame()
}

// c.mu must be held
func (c *Controller) frame() Frame {
	fr := Frame{State: c.state}
	if c.hooks.Ambient != nil {
		fr.Background = c.hooks.Ambient()
	}
	return fr
}

func (c *Controller) begin(r Route) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest++
	from := c.state.Route
	c.state = newState(r)
	if c.hooks.Leave != nil {
		c.hooks.Leave(from, r)
	}
	return c.latest
}

func (c *Controller) commit(gen uint64, res Result) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.latest {
		c.log.Debug("discarded stale load", "route", res.Route.String(), "generation", gen, "latest", c.latest)
		return c.frame(), false
	}

	c.state = res.State()
	if c.hooks.Commit != nil {
		c.hooks.Commit(c.state)
	}
	return c.frame(), true
}
