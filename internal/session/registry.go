package session

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/maison/internal/cart"
	"github.com/fjod/maison/internal/navigation"
	"github.com/fjod/maison/internal/notify"
	"go.uber.org/zap"
)

const (
	// DefaultIdleTTL is how long a session survives without requests.
	DefaultIdleTTL = 30 * time.Minute

	// DefaultCleanupInterval is how often the janitor looks for idle sessions.
	DefaultCleanupInterval = time.Minute

	DefaultPublishTimeout = 2 * time.Second
)

// Session is the cart and navigation state of one browser.
type Session struct {
	ID   string
	Cart *cart.Store
	Nav  *navigation.Navigator

	lastSeen    time.Time
	inUse       int // requests holding the session; the janitor skips it while > 0
	unsubscribe func()
}

// Registry owns every live session. Sessions are created on first use and dropped after
// IdleTTL without a request; nothing is persisted.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	notifier notify.Notifier
	logger   *zap.Logger

	cartOpts        []cart.Option
	idleTTL         time.Duration
	cleanupInterval time.Duration
	publishTimeout  time.Duration
	now             func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

type Option func(*Registry)

func WithIdleTTL(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.idleTTL = d
		}
	}
}

func WithCleanupInterval(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.cleanupInterval = d
		}
	}
}

func WithPublishTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.publishTimeout = d
		}
	}
}

// WithCartOptions is applied to every cart the registry creates.
func WithCartOptions(opts ...cart.Option) Option {
	return func(r *Registry) {
		r.cartOpts = append(r.cartOpts, opts...)
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry starts the idle-session janitor. Call Close to stop it.
func NewRegistry(notifier notify.Notifier, logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		sessions:        make(map[string]*Session),
		notifier:        notifier,
		logger:          logger,
		idleTTL:         DefaultIdleTTL,
		cleanupInterval: DefaultCleanupInterval,
		publishTimeout:  DefaultPublishTimeout,
		now:             time.Now,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.wg.Add(1)
	go r.cleanupLoop()

	return r
}

// Get returns the session for id, creating it on first use. created reports whether
// the session is new. Every call counts as activity.
func (r *Registry) Get(id string) (s *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *Registry) getLocked(id string) (s *Session, created bool) {
	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return s, false
	}

	s = &Session{
		ID:       id,
		Cart:     cart.NewStore(r.cartOpts...),
		Nav:      navigation.New(),
		lastSeen: now,
	}
	s.unsubscribe = s.Cart.Subscribe(func(c cart.Change) {
		r.forward(id, c)
	})
	r.sessions[id] = s

	r.logger.Debug("session created", zap.String("session_id", id))
	return s, true
}

// Acquire is Get for the duration of a request: the session cannot expire until the
// returned release func is called. Release also counts as activity.
func (r *Registry) Acquire(id string) (s *Session, release func()) {
	r.mu.Lock()
	s, _ = r.getLocked(id)
	s.inUse++
	r.mu.Unlock()

	var once sync.Once
	return s, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			s.inUse--
			s.lastSeen = r.now()
		})
	}
}

// Lookup returns an existing session without creating or touching it.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// End destroys the session and its cart.
func (r *Registry) End(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.unsubscribe()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// forward publishes a cart change. Failures are logged and never reach the cart caller.
func (r *Registry) forward(sessionID string, c cart.Change) {
	e := EventFor(sessionID, c)

	ctx, cancel := context.WithTimeout(context.Background(), r.publishTimeout)
	defer cancel()

	if err := r.notifier.Publish(ctx, e); err != nil {
		r.logger.Warn("failed to publish cart event",
			zap.String("session_id", sessionID),
			zap.String("event_type", string(e.Type)),
			zap.String("event_id", e.ID),
			zap.Error(err),
		)
	}
}

// EventFor converts a cart change into the event published for it.
func EventFor(sessionID string, c cart.Change) notify.Event {
	var typ notify.EventType
	switch c.Kind {
	case cart.ItemAdded:
		typ = notify.EventItemAdded
	case cart.QuantityUpdated:
		typ = notify.EventQuantityUpdated
	case cart.ItemRemoved:
		typ = notify.EventItemRemoved
	case cart.CheckedOut:
		typ = notify.EventOrderConfirmed
	}

	e := notify.NewEvent(typ, sessionID)
	e.ProductID = c.ProductID
	e.Snapshot = c.Snapshot
	e.Receipt = c.Receipt
	return e
}

func (r *Registry) cleanupLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.expireIdle()
		case <-r.stopCleanup:
			return
		}
	}
}

// expireIdle drops every session idle for longer than the TTL and not held by a request.
// It returns how many went.
func (r *Registry) expireIdle() int {
	cutoff := r.now().Add(-r.idleTTL)

	var expired []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.inUse == 0 && s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.unsubscribe()
		r.logger.Debug("session expired", zap.String("session_id", s.ID))
	}
	return len(expired)
}

// Close stops the janitor. It is safe to call more than once.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		close(r.stopCleanup)
	})
	r.wg.Wait()
	return nil
}
