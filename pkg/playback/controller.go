package playback

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
)

// State is the playback state.
type State int

const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// MarshalText encodes the state as its name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	// DefaultBaseInterval is the time between day advances at speed 1.
	DefaultBaseInterval = time.Second

	MinSpeed = 0.1
	MaxSpeed = 64.0

	// MinIncrease keeps 1+increase positive so an application can be
	// reversed.
	MinIncrease = -0.9
)

// ErrEmptyTimeline is returned by New for a nil or zero-length timeline.
var ErrEmptyTimeline = errors.New("timeline has no days")

// SyncFunc receives a copy of the current day after every navigation or
// intervention. Calls are delivered in order. A SyncFunc may read from the
// controller but must not call its mutating methods.
type SyncFunc func(day timeline.Day)

// Controller owns a timeline, the playback position and the product ledger.
// All methods and the playback tick are serialised, so each operation runs
// to completion before the next starts.
type Controller struct {
	mu     sync.Mutex
	syncMu sync.Mutex

	tl      *timeline.Timeline
	current int
	state   State
	speed   float64
	base    time.Duration

	sched  Scheduler
	cancel func()
	gen    uint64

	ledger ledger
	onSync SyncFunc
	now    func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler used for playback. Defaults to
// TickerScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithBaseInterval sets the advance interval at speed 1.
func WithBaseInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.base = d
		}
	}
}

// WithSpeed sets the initial speed multiplier, used by Play callers that
// pass Speed() back in.
func WithSpeed(speed float64) Option {
	return func(c *Controller) { c.speed = clampSpeed(speed) }
}

// WithSync registers the render-sync callback.
func WithSync(fn SyncFunc) Option {
	return func(c *Controller) { c.onSync = fn }
}

// WithClock sets the wall clock used to stamp applications.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a paused controller positioned on day 0.
func New(tl *timeline.Timeline, opts ...Option) (*Controller, error) {
	if tl == nil || tl.Len() == 0 {
		return nil, ErrEmptyTimeline
	}
	c := &Controller{
		tl:    tl,
		state: Paused,
		speed: 1,
		base:  DefaultBaseInterval,
		sched: TickerScheduler{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Status is a point-in-time view of the playback state.
type Status struct {
	State        State         `json:"state"`
	Speed        float64       `json:"speed"`
	Interval     time.Duration `json:"interval"`
	CurrentDay   int           `json:"current_day"`
	TotalDays    int           `json:"total_days"`
	Applications int           `json:"applications"`
}

// Status returns the current playback state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:        c.state,
		Speed:        c.speed,
		Interval:     c.interval(),
		CurrentDay:   c.current,
		TotalDays:    c.tl.Len(),
		Applications: len(c.ledger.apps),
	}
}

// CurrentDay returns a copy of the day at the playback position.
func (c *Controller) CurrentDay() timeline.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tl.Day(c.current)
}

// CurrentIndex returns the playback position.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// TotalDays returns the horizon.
func (c *Controller) TotalDays() int {
	return c.tl.Len()
}

// Day returns a copy of day i, clamped into range.
func (c *Controller) Day(i int) timeline.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tl.Day(i)
}

// Days returns a copy of the whole timeline.
func (c *Controller) Days() []timeline.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tl.Days()
}

// Summary returns the aggregate view of the timeline.
func (c *Controller) Summary() timeline.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tl.Summary()
}

// State returns whether playback is running.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Applications returns the products currently in effect, oldest first.
func (c *Controller) Applications() []Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.list()
}

// SetDay moves to day i (clamped) and syncs the renderer.
func (c *Controller) SetDay(i int) {
	c.mu.Lock()
	c.current = c.tl.Clamp(i)
	c.syncLocked()
}

// NextDay advances one day. It does nothing on the last day.
func (c *Controller) NextDay() {
	c.mu.Lock()
	if c.current >= c.tl.Len()-1 {
		c.mu.Unlock()
		return
	}
	c.current++
	c.syncLocked()
}

// PrevDay steps back one day. It does nothing on day 0.
func (c *Controller) PrevDay() {
	c.mu.Lock()
	if c.current <= 0 {
		c.mu.Unlock()
		return
	}
	c.current--
	c.syncLocked()
}

// Play starts advancing one day per interval at the given speed multiplier.
// Playing from the last day does nothing. Calling Play while playing
// changes the speed.
func (c *Controller) Play(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = clampSpeed(speed)
	if c.current >= c.tl.Len()-1 {
		c.stopLocked()
		return
	}
	c.startLocked()
}

// Pause stops playback. The position is unchanged.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// SetSpeed changes the speed multiplier. While playing, the running task is
// replaced by one at the new interval; the position is kept.
func (c *Controller) SetSpeed(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = clampSpeed(speed)
	if c.state == Playing {
		c.startLocked()
	}
}

// Speed returns the current speed multiplier.
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// ApplyProduct multiplies the growth factor of every day from fromDay on
// by (1 + growthRateIncrease), capped at 1, and records the application.
// fromDay is clamped into range and the increase is bounded below by
// MinIncrease. Applying the same product twice compounds the effect. A day
// capped at 1 marks every application in effect on it as Saturated.
func (c *Controller) ApplyProduct(productID, productName string, growthRateIncrease float64, fromDay int) Application {
	c.mu.Lock()
	inc := clampIncrease(growthRateIncrease)
	from := c.tl.Clamp(fromDay)
	last := c.tl.Rescale(from, 1+inc)

	app := Application{
		ID:                 uuid.NewString(),
		ProductID:          productID,
		ProductName:        productName,
		GrowthRateIncrease: inc,
		AppliedAtDay:       from,
		AppliedAt:          c.now(),
	}
	c.ledger.add(app)
	c.ledger.markSaturated(last)
	app = c.ledger.apps[len(c.ledger.apps)-1]
	c.syncLocked()
	return app
}

// RemoveProduct reverses an application and drops it from the ledger.
// The reversal multiplies each affected day by 1 - inc/(1+inc); it is exact
// only if no day was capped at 1 while the product was in effect, and
// otherwise best-effort. Such applications report Saturated. It returns false if the application is not in the
// ledger.
func (c *Controller) RemoveProduct(app Application) bool {
	_, ok := c.RemoveProductByID(app.ID)
	return ok
}

// RemoveProductByID is RemoveProduct keyed by application ID. It returns the
// removed record.
func (c *Controller) RemoveProductByID(id string) (Application, bool) {
	c.mu.Lock()
	i, ok := c.ledger.find(id)
	if !ok {
		c.mu.Unlock()
		return Application{}, false
	}
	app := c.ledger.removeAt(i)
	c.ledger.markSaturated(c.tl.Rescale(app.AppliedAtDay, 1+reverseFactor(app.GrowthRateIncrease)))
	c.syncLocked()
	return app, true
}

// Close stops playback.
func (c *Controller) Close() {
	c.Pause()
}

// interval is base/speed. Caller holds c.mu.
func (c *Controller) interval() time.Duration {
	return time.Duration(float64(c.base) / c.speed)
}

// startLocked replaces any running task with one at the current interval.
func (c *Controller) startLocked() {
	c.cancelLocked()
	c.gen++
	gen := c.gen
	c.state = Playing
	c.cancel = c.sched.Every(c.interval(), func() { c.tick(gen) })
}

func (c *Controller) stopLocked() {
	c.cancelLocked()
	c.gen++
	c.state = Paused
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// tick advances one day. Ticks from a cancelled task are ignored: a tick
// may already be waiting on the lock when Pause or SetSpeed runs.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if c.state != Playing || gen != c.gen {
		c.mu.Unlock()
		return
	}
	last := c.tl.Len() - 1
	if c.current >= last {
		c.stopLocked()
		c.mu.Unlock()
		return
	}
	c.current++
	if c.current >= last {
		c.stopLocked()
	}
	c.syncLocked()
}

// syncLocked snapshots the current day, releases c.mu and delivers the
// snapshot. syncMu is taken before c.mu is released so callbacks arrive in
// mutation order.
func (c *Controller) syncLocked() {
	day := c.tl.Day(c.current)
	fn := c.onSync
	if fn == nil {
		c.mu.Unlock()
		return
	}
	c.syncMu.Lock()
	c.mu.Unlock()
	defer c.syncMu.Unlock()
	fn(day)
}

func clampSpeed(s float64) float64 {
	if math.IsNaN(s) || s <= 0 {
		return 1
	}
	return math.Max(MinSpeed, math.Min(MaxSpeed, s))
}

// clampIncrease bounds inc below by MinIncrease. NaN and +Inf have no
// reversible effect and map to 0.
func clampIncrease(inc float64) float64 {
	if math.IsNaN(inc) || math.IsInf(inc, 1) {
		return 0
	}
	return math.Max(MinIncrease, inc)
}
