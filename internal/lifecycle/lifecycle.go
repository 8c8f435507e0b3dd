// Package lifecycle implements the pipeline definition's state machine:
// LOADING -> AVAILABLE -> UNLOADING -> RETIRED, guarded by an in-flight
// request counter so a reload or retire never tears down state a request
// is actively reading.
package lifecycle

import (
	"sync"
	"time"

	"github.com/specialistvlad/pipelinedef/internal/status"
)

// State is one point in the pipeline definition's lifecycle.
type State int

const (
	Loading State = iota
	Available
	Unloading
	Retired
)

func (s State) String() string {
	switch s {
	case Loading:
		return "LOADING"
	case Available:
		return "AVAILABLE"
	case Unloading:
		return "UNLOADING"
	case Retired:
		return "RETIRED"
	default:
		return "UNKNOWN"
	}
}

// Guard is a scoped handle pinning the controller at (at least) AVAILABLE
// while held. Release must be idempotent and safe to call on every exit
// path, including error returns; it must never be held across a call that
// itself waits on the same controller's reload/retire drain.
type Guard struct {
	once sync.Once
	c    *Controller
}

// Release decrements the in-flight counter exactly once.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.c.release()
	})
}

// Controller owns the lifecycle state and the in-flight counter. A single
// control-plane goroutine mutates state (reload/retire); any number of
// request-handling goroutines acquire guards concurrently.
type Controller struct {
	mu       sync.Mutex
	cond     *sync.Cond
	state    State
	inFlight int

	onTransition []func(from, to State)
}

// New creates a controller starting in LOADING.
func New() *Controller {
	c := &Controller{state: Loading}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// OnTransition registers a hook invoked synchronously on every state
// change, e.g. for notifying dependants when validation passes or a
// definition starts unloading.
func (c *Controller) OnTransition(fn func(from, to State)) {
	c.mu.Lock()
	c.onTransition = append(c.onTransition, fn)
	c.mu.Unlock()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// transitionLocked moves to `to`, wakes every waiter, and fires registered
// hooks. Caller must hold c.mu.
func (c *Controller) transitionLocked(to State) {
	from := c.state
	c.state = to
	c.cond.Broadcast()
	hooks := c.onTransition
	c.mu.Unlock()
	for _, hook := range hooks {
		hook(from, to)
	}
	c.mu.Lock()
}

// BeginLoad moves the controller to LOADING from whatever state it is in
// (a reload), or is a no-op when it is already LOADING, as on the first load.
func (c *Controller) BeginLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Loading {
		c.transitionLocked(Loading)
	}
}

// DrainAndCommit blocks until inFlight reaches zero, then invokes commit
// while still holding the lock, guaranteeing no guard can be acquired
// mid-commit and observe a torn definition.
func (c *Controller) DrainAndCommit(commit func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.inFlight > 0 {
		c.cond.Wait()
	}
	commit()
}

// MarkAvailable transitions LOADING->AVAILABLE on successful validation.
func (c *Controller) MarkAvailable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitionLocked(Available)
}

// BeginUnload transitions AVAILABLE->UNLOADING, the first step of retire.
func (c *Controller) BeginUnload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitionLocked(Unloading)
}

// MarkRetired transitions UNLOADING->RETIRED. Once RETIRED the definition
// accepts no further operations.
func (c *Controller) MarkRetired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitionLocked(Retired)
}

// acquire increments the in-flight counter unconditionally and returns a Guard.
func (c *Controller) acquire() *Guard {
	c.mu.Lock()
	c.inFlight++
	c.mu.Unlock()
	return &Guard{c: c}
}

func (c *Controller) release() {
	c.mu.Lock()
	c.inFlight--
	if c.inFlight == 0 {
		c.cond.Broadcast()
	}
	c.mu.Unlock()
}

// InFlight returns the current in-flight counter, for tests and metrics.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// WaitForLoaded acquires a guard pinning the current state, then blocks up
// to timeout for the state to become AVAILABLE. If the state ever advances
// past AVAILABLE while waiting, the guard is released and
// MODEL_VERSION_NOT_LOADED_ANYMORE is returned. If timeout elapses first,
// MODEL_VERSION_NOT_LOADED_YET is returned. On success the caller owns the
// returned guard and must Release it when done with the request.
func (c *Controller) WaitForLoaded(timeout time.Duration) (*Guard, status.Status) {
	guard := c.acquire()

	c.mu.Lock()
	deadline := time.Now().Add(timeout)
	for c.state != Available {
		if c.state > Available {
			c.mu.Unlock()
			guard.Release()
			return nil, status.Of(status.ModelVersionNotLoadedAnymore)
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			c.mu.Unlock()
			guard.Release()
			return nil, status.Of(status.ModelVersionNotLoadedYet)
		}
		c.waitWithTimeout(remaining)
	}
	c.mu.Unlock()
	return guard, status.OKStatus
}

// waitWithTimeout waits on the condition variable for at most d, re-checking
// state afterward. Caller must hold c.mu on entry and exit; cond.Wait
// releases and reacquires it internally.
func (c *Controller) waitWithTimeout(d time.Duration) {
	timer := time.AfterFunc(d, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer timer.Stop()
	c.cond.Wait()
}
