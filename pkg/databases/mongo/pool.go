package mongo

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haguru/mongolens/config"
	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/helper"

	"golang.org/x/sync/singleflight"
)

// EvictionReason says why a handle left the pool.
type EvictionReason string

const (
	EvictIdle     EvictionReason = "idle"
	EvictLRU      EvictionReason = "lru"
	EvictShutdown EvictionReason = "shutdown"
)

// CleanupResult reports one closed handle. Key is the fingerprint of the
// connection string, never the string itself.
type CleanupResult struct {
	Key    string
	Reason EvictionReason
	Err    error
}

// Handle is a pooled session bound to one connection string.
type Handle struct {
	key         string
	fingerprint string
	session     interfaces.MongoSession
	lastUsed    atomic.Int64
}

func (h *Handle) touch(now time.Time) {
	h.lastUsed.Store(now.UnixNano())
}

// LastUsed returns when the handle was last handed out.
func (h *Handle) LastUsed() time.Time {
	return time.Unix(0, h.lastUsed.Load())
}

// Pool caches one live session per connection string. Entries idle longer
// than the idle timeout are closed, and the least recently used entries are
// closed whenever the pool grows past its maximum size.
type Pool struct {
	mu      sync.Mutex
	handles map[string]*Handle
	closed  bool

	group     singleflight.Group
	cleanups  sync.WaitGroup
	connector interfaces.Connector
	logger    interfaces.Logger
	metrics   interfaces.Metrics
	clock     func() time.Time

	maxClients        int
	idleTimeout       time.Duration
	disconnectTimeout time.Duration
}

var _ interfaces.SessionProvider = (*Pool)(nil)

// Option configures a Pool.
type Option func(*Pool)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(p *Pool) {
		p.clock = clock
	}
}

// WithMetrics reports pool activity. Call RegisterMetrics on m first.
func WithMetrics(m interfaces.Metrics) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}

func WithMaxClients(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.maxClients = n
		}
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.idleTimeout = d
		}
	}
}

func WithDisconnectTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.disconnectTimeout = d
		}
	}
}

// NewPool returns an empty pool that opens sessions through connector.
func NewPool(connector interfaces.Connector, logger interfaces.Logger, opts ...Option) *Pool {
	p := &Pool{
		handles:           make(map[string]*Handle),
		connector:         connector,
		logger:            logger,
		clock:             time.Now,
		maxClients:        config.DefaultMaxClients,
		idleTimeout:       config.DefaultIdleTimeout,
		disconnectTimeout: config.DefaultDisconnectTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterMetrics registers the pool metrics on m.
func RegisterMetrics(m interfaces.Metrics) {
	m.RegisterGauge(MetricPoolClients, "Number of cached MongoDB clients")
	m.RegisterCounter(MetricPoolConnects, "Total number of MongoDB clients created")
	m.RegisterCounter(MetricPoolConnectErrors, "Total number of failed MongoDB connection attempts")
	m.RegisterCounterVec(MetricPoolEvictions, "Total number of MongoDB clients closed by the pool", []string{"reason"})
}

// Session returns the cached session for uri or connects a new one.
// Concurrent first calls for the same uri share a single connect.
func (p *Pool) Session(ctx context.Context, uri string) (interfaces.MongoSession, error) {
	if uri == "" {
		return nil, models.NewConnectionError(models.ReasonInvalidURI, ErrEmptyURI)
	}

	if h := p.lookup(uri); h != nil {
		return h.session, nil
	}

	v, err, _ := p.group.Do(uri, func() (interface{}, error) {
		if h := p.lookup(uri); h != nil {
			return h, nil
		}
		return p.connect(ctx, uri)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle).session, nil
}

func (p *Pool) lookup(uri string) *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	h, ok := p.handles[uri]
	if !ok {
		return nil
	}
	h.touch(p.clock())
	return h
}

// connect runs detached from the caller's cancellation so one impatient
// request cannot fail the callers sharing its singleflight slot.
func (p *Pool) connect(ctx context.Context, uri string) (*Handle, error) {
	fingerprint := helper.Fingerprint(uri)

	session, err := p.connector.Connect(context.WithoutCancel(ctx), uri)
	if err != nil {
		p.incCounter(MetricPoolConnectErrors)
		p.logger.Warn("Failed to create MongoDB client", "client", fingerprint, "reason", models.ReasonOf(err), "error", err)
		return nil, err
	}

	h := &Handle{key: uri, fingerprint: fingerprint, session: session}
	h.touch(p.clock())

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.disconnect(h, EvictShutdown)
		return nil, models.NewConnectionError(models.ReasonNetwork, ErrPoolClosed)
	}
	p.handles[uri] = h
	size := len(p.handles)
	p.cleanups.Add(1)
	p.mu.Unlock()

	p.incCounter(MetricPoolConnects)
	p.setClients(size)
	p.logger.Info("MongoDB client created", "client", fingerprint, "clients", size)

	go func() {
		defer p.cleanups.Done()
		p.Cleanup(context.Background())
	}()

	return h, nil
}

// Cleanup closes idle handles, then least recently used ones until the pool
// is within its maximum size. Close failures are reported, not returned.
func (p *Pool) Cleanup(ctx context.Context) []CleanupResult {
	now := p.clock()

	p.mu.Lock()
	victims := make([]*Handle, 0)
	reasons := make([]EvictionReason, 0)

	for key, h := range p.handles {
		if now.Sub(h.LastUsed()) > p.idleTimeout {
			victims = append(victims, h)
			reasons = append(reasons, EvictIdle)
			delete(p.handles, key)
		}
	}

	if excess := len(p.handles) - p.maxClients; excess > 0 {
		remaining := make([]*Handle, 0, len(p.handles))
		for _, h := range p.handles {
			remaining = append(remaining, h)
		}
		sort.Slice(remaining, func(i, j int) bool {
			a, b := remaining[i].lastUsed.Load(), remaining[j].lastUsed.Load()
			if a != b {
				return a < b
			}
			return remaining[i].key < remaining[j].key
		})
		for _, h := range remaining[:excess] {
			victims = append(victims, h)
			reasons = append(reasons, EvictLRU)
			delete(p.handles, h.key)
		}
	}
	size := len(p.handles)
	p.mu.Unlock()

	if len(victims) == 0 {
		return nil
	}
	p.setClients(size)

	results := make([]CleanupResult, 0, len(victims))
	for i, h := range victims {
		results = append(results, p.disconnect(h, reasons[i]))
	}
	return results
}

func (p *Pool) disconnect(h *Handle, reason EvictionReason) CleanupResult {
	ctx, cancel := context.WithTimeout(context.Background(), p.disconnectTimeout)
	defer cancel()

	result := CleanupResult{Key: h.fingerprint, Reason: reason}
	if err := h.session.Disconnect(ctx); err != nil {
		result.Err = err
		p.logger.Error("Failed to close MongoDB client", "client", h.fingerprint, "reason", reason, "error", err)
	} else {
		p.logger.Info("MongoDB client closed", "client", h.fingerprint, "reason", reason)
	}
	p.incCounterVec(MetricPoolEvictions, string(reason))
	return result
}

// StartSweeper runs Cleanup every interval until ctx is done.
func (p *Pool) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if results := p.Cleanup(ctx); len(results) > 0 {
					p.logger.Debug("Pool sweep finished", "closed", len(results), "clients", p.Len())
				}
			}
		}
	}()
}

// Len returns the number of cached sessions.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}

// Close disconnects every cached session and refuses new ones. It waits for
// in-flight cleanup passes to finish or ctx to expire.
func (p *Pool) Close(ctx context.Context) []CleanupResult {
	p.mu.Lock()
	p.closed = true
	victims := make([]*Handle, 0, len(p.handles))
	for key, h := range p.handles {
		victims = append(victims, h)
		delete(p.handles, key)
	}
	p.mu.Unlock()
	p.setClients(0)

	results := make([]CleanupResult, 0, len(victims))
	for _, h := range victims {
		results = append(results, p.disconnect(h, EvictShutdown))
	}

	done := make(chan struct{})
	go func() {
		p.cleanups.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warn("Timed out waiting for pool cleanup", "error", ctx.Err())
	}
	return results
}

func (p *Pool) incCounter(name string) {
	if p.metrics != nil {
		p.metrics.IncCounter(name)
	}
}

func (p *Pool) incCounterVec(name string, labels ...string) {
	if p.metrics != nil {
		p.metrics.IncCounterVec(name, labels...)
	}
}

func (p *Pool) setClients(n int) {
	if p.metrics != nil {
		p.metrics.SetGauge(MetricPoolClients, float64(n))
	}
}
