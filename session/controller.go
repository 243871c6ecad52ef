package session

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lixenwraith/typewall/content"
	"github.com/lixenwraith/typewall/core"
	"github.com/lixenwraith/typewall/engine"
	"github.com/lixenwraith/typewall/layout"
	"github.com/lixenwraith/typewall/status"
	"github.com/lixenwraith/typewall/typewriter"
	"github.com/lixenwraith/typewall/vmath"
)

var ErrUnknownWindow = errors.New("unknown window")

// Content is the read side of the content store
type Content interface {
	Sequence(name string) (content.Sequence, error)
	Names() []string
}

// Options injects collaborators; zero values get production defaults
type Options struct {
	Clock   engine.Clock
	Content Content
	Rand    *vmath.FastRand
	Logger  *log.Logger
	Status  *status.Registry

	// OnChunk is called after a focused window reveals runes, outside the controller lock
	OnChunk func(id string, runes int)
}

// Controller owns every window and cat of one session
// All mutation happens under mu; timer callbacks take the same lock, so steps never interleave
type Controller struct {
	mu sync.Mutex

	cfg     Config
	clock   engine.Clock
	content Content
	rng     *vmath.FastRand
	logger  *log.Logger
	onChunk func(id string, runes int)

	windows   []*window // Creation order, highest index last
	byID      map[string]*window
	focused   *window
	nextIndex int
	maxZ      int
	pending   int // Armed window timers
	rotation  int // Index where the next Rearrange starts handing out live slots

	speed    int
	mode     layout.Mode
	viewport layout.Viewport
	enabled  bool
	stopped  bool

	cats      []*cat
	catSpring harmonica.Spring
	catTimer  engine.Timer
	catToken  uint64

	statTotal       *atomic.Int64
	statLive        *atomic.Int64
	statPlaceholder *atomic.Int64
	statInert       *atomic.Int64
	statCats        *atomic.Int64
	statSteps       *atomic.Int64
	statPending     *atomic.Int64
	statZombie      *atomic.Int64
	statCatStale    *atomic.Int64
	statCatDistance *status.AtomicFloat
	statTyping      *status.AtomicFloat
	statSpeed       *atomic.Int64
	statPaused      *atomic.Bool
}

// New creates an empty session, call SetCount to populate it
func New(cfg Config, opts Options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalize()

	if opts.Clock == nil {
		opts.Clock = engine.NewRealClock()
	}
	if opts.Content == nil {
		opts.Content = content.NewStore()
	}
	if opts.Rand == nil {
		opts.Rand = vmath.NewEntropyRand()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}

	reg := opts.Status
	c := &Controller{
		cfg:      cfg,
		clock:    opts.Clock,
		content:  opts.Content,
		rng:      opts.Rand,
		logger:   opts.Logger,
		onChunk:  opts.OnChunk,
		byID:     make(map[string]*window),
		speed:    cfg.Speed,
		mode:     cfg.Mode,
		viewport: cfg.Viewport,
		enabled:  true,

		catSpring: harmonica.NewSpring(cfg.CatFrame.Seconds(), catAngularFrequency, catDamping),

		statTotal:       reg.Ints.Get(status.WindowsTotal),
		statLive:        reg.Ints.Get(status.WindowsLive),
		statPlaceholder: reg.Ints.Get(status.WindowsPlaceholder),
		statInert:       reg.Ints.Get(status.WindowsInert),
		statCats:        reg.Ints.Get(status.Cats),
		statSteps:       reg.Ints.Get(status.TypewriterSteps),
		statPending:     reg.Ints.Get(status.TimersPending),
		statZombie:      reg.Ints.Get(status.ZombieTicks),
		statCatStale:    reg.Ints.Get(status.CatTicksStale),
		statCatDistance: reg.Floats.Get(status.CatDistance),
		statTyping:      reg.Floats.Get(status.TypingRatio),
		statSpeed:       reg.Ints.Get(status.Speed),
		statPaused:      reg.Bools.Get(status.Paused),
	}
	c.publishLocked()
	return c, nil
}

// SetCount grows or shrinks the session to n windows, clamped to the configured range
// Returns the effective count
func (c *Controller) SetCount(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	clamped := vmath.Clamp(n, c.cfg.MinTerminals, c.cfg.MaxTerminals)
	if clamped != n {
		c.logger.Debug("window count clamped", "requested", n, "count", clamped)
	}

	cur := len(c.windows)
	switch {
	case clamped > cur:
		names := c.content.Names()
		for i := cur; i < clamped; i++ {
			w := c.newWindowLocked(names)
			c.windows = append(c.windows, w)
			c.byID[w.id] = w
		}
	case clamped < cur:
		// Highest index first
		for i := cur - 1; i >= clamped; i-- {
			c.destroyLocked(c.windows[i])
			c.windows[i] = nil
		}
		c.windows = c.windows[:clamped]
	}

	if clamped != cur {
		c.rebalanceLocked()
		if c.mode == layout.ModeUniform {
			c.applyLayoutLocked()
		}
		c.syncCatsLocked()
		c.logger.Info("window count changed", "from", cur, "to", clamped, "live", c.liveCountLocked())
	}

	c.publishLocked()
	return clamped
}

// Count returns the current number of windows
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.windows)
}

// SetLayout switches the arrangement mode and lays out every live window
// Reveal progress is untouched
func (c *Controller) SetLayout(mode layout.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode
	c.applyLayoutLocked()
	c.logger.Debug("layout applied", "mode", mode, "live", c.liveCountLocked())
}

// Layout returns the current arrangement mode
func (c *Controller) Layout() layout.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Rearrange reruns the current layout
// Above the placeholder threshold the live slots move on to the next placeholders in index order, wrapping,
// so every window gets its turn to type; scattered mode also yields a fresh random arrangement
func (c *Controller) Rearrange() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotateLiveLocked()
	c.applyLayoutLocked()
	c.publishLocked()
}

// SetViewport records the drawable area; uniform layouts are recomputed for it
func (c *Controller) SetViewport(vp layout.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vp == c.viewport {
		return
	}
	c.viewport = vp
	if c.mode == layout.ModeUniform {
		c.applyLayoutLocked()
	}
	c.retargetCatsLocked()
}

// Viewport returns the current drawable area
func (c *Controller) Viewport() layout.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// Focus raises a window above every other and makes it the only focused one
func (c *Controller) Focus(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("focus %q: %w", id, ErrUnknownWindow)
	}
	c.focusLocked(w)
	return nil
}

// FocusNext moves focus to the window created after the focused one, wrapping around
// Returns the newly focused id, empty when there are no windows
func (c *Controller) FocusNext() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.windows) == 0 {
		return ""
	}
	next := 0
	if c.focused != nil {
		if i := slices.Index(c.windows, c.focused); i >= 0 {
			next = (i + 1) % len(c.windows)
		}
	}
	w := c.windows[next]
	c.focusLocked(w)
	return w.id
}

// Focused returns the focused window id, empty if none
func (c *Controller) Focused() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.focused == nil {
		return ""
	}
	return c.focused.id
}

// SetSpeed changes the nominal chunks-per-second for every window
// Steps already scheduled keep their interval; the new speed applies from the next one
func (c *Controller) SetSpeed(speed int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.speed = typewriter.ClampSpeed(speed)
	c.statSpeed.Store(int64(c.speed))
	return c.speed
}

// Speed returns the nominal speed
func (c *Controller) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// SetEnabled freezes or resumes all typing; frozen windows keep their progress
func (c *Controller) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled == enabled {
		return
	}
	c.enabled = enabled

	for _, w := range c.windows {
		if w.state == nil {
			continue
		}
		if enabled {
			st := typewriter.Resume(*w.state)
			w.state = &st
			c.scheduleLocked(w)
		} else {
			c.cancelLocked(w)
			st := typewriter.Pause(*w.state)
			w.state = &st
		}
	}
	c.publishLocked()
	c.logger.Debug("typing toggled", "enabled", enabled)
}

// Enabled reports whether typing is running
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// OnPositionChange applies a drag result from the gesture provider
func (c *Controller) OnPositionChange(id string, p core.Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("move %q: %w", id, ErrUnknownWindow)
	}
	w.pos = p
	return nil
}

// OnSizeChange applies a resize result from the gesture provider, bounded below by MinWindow
func (c *Controller) OnSizeChange(id string, s core.Size) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("resize %q: %w", id, ErrUnknownWindow)
	}
	w.size = s.Clamp(c.cfg.MinWindow, core.Size{})
	return nil
}

// Close removes one window explicitly, even below MinTerminals
// A placeholder is promoted into the freed live slot when the cap allows
func (c *Controller) Close(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("close %q: %w", id, ErrUnknownWindow)
	}

	c.destroyLocked(w)
	c.windows = slices.DeleteFunc(c.windows, func(x *window) bool { return x == w })
	c.rebalanceLocked()
	c.syncCatsLocked()
	c.publishLocked()
	return nil
}

// AssignSequence gives a window new content and restarts its reveal
// An unknown key leaves the window inert with an empty sequence
func (c *Controller) AssignSequence(id, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("assign %q: %w", id, ErrUnknownWindow)
	}
	c.assignLocked(w, key)
	return nil
}

// NextSequence assigns the script following the window's current one in store order
func (c *Controller) NextSequence(id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return "", fmt.Errorf("next sequence %q: %w", id, ErrUnknownWindow)
	}
	names := c.content.Names()
	if len(names) == 0 {
		return "", nil
	}
	next := names[(slices.Index(names, w.seqKey)+1)%len(names)]
	c.assignLocked(w, next)
	return next, nil
}

// Windows returns render models ordered bottom to top
func (c *Controller) Windows() []WindowView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]WindowView, len(c.windows))
	for i, w := range c.windows {
		out[i] = w.view()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Window returns the render model of one window
func (c *Controller) Window(id string) (WindowView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.byID[id]
	if !ok {
		return WindowView{}, false
	}
	return w.view(), true
}

// Stats summarizes the session for status displays
type Stats struct {
	Total        int
	Live         int
	Placeholders int
	Inert        int
	Cats         int
	Speed        int
	Mode         layout.Mode
	Enabled      bool
	Timers       int
}

// Stats returns a consistent summary
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Total:   len(c.windows),
		Cats:    len(c.cats),
		Speed:   c.speed,
		Mode:    c.mode,
		Enabled: c.enabled,
		Timers:  c.pending,
	}
	for _, w := range c.windows {
		switch {
		case w.state == nil:
			s.Placeholders++
		case w.state.Inert:
			s.Live++
			s.Inert++
		default:
			s.Live++
		}
	}
	return s
}

// Stop cancels every timer; pending callbacks become no-ops
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true
	for _, w := range c.windows {
		c.cancelLocked(w)
	}
	c.cancelCatsLocked()
	c.publishLocked()
	c.logger.Debug("session stopped", "windows", len(c.windows))
}

// --- internals, mu held ---

func (c *Controller) newWindowLocked(names []string) *window {
	idx := c.nextIndex
	c.nextIndex++

	key := ""
	if len(names) > 0 {
		key = names[idx%len(names)]
	}

	c.maxZ++
	w := &window{
		id:          uuid.NewString(),
		index:       idx,
		size:        c.cfg.Window,
		z:           c.maxZ,
		speedFactor: typewriter.Jitter(c.rng),
		seqKey:      key,
		rng:         c.rng.Fork(),
	}
	w.pos = layout.Scatter(c.viewport, w.size, c.rng)
	return w
}

// rebalanceLocked enforces the live cap: promote lowest-index placeholders, demote highest-index live windows
func (c *Controller) rebalanceLocked() {
	target := c.cfg.Policy.Live(len(c.windows))
	live := c.liveCountLocked()

	for i := 0; live < target && i < len(c.windows); i++ {
		if w := c.windows[i]; w.placeholder() {
			c.promoteLocked(w)
			live++
		}
	}
	for i := len(c.windows) - 1; live > target && i >= 0; i-- {
		if w := c.windows[i]; !w.placeholder() {
			c.demoteLocked(w)
			live--
		}
	}
}

// rotateLiveLocked demotes every live window and promotes the next run of placeholders after the cursor
func (c *Controller) rotateLiveLocked() {
	n := len(c.windows)
	target := c.cfg.Policy.Live(n)
	if target == 0 || target >= n {
		c.rebalanceLocked()
		return
	}

	start := -1
	for k := range n {
		if i := (c.rotation + k) % n; c.windows[i].placeholder() {
			start = i
			break
		}
	}
	if start < 0 {
		c.rebalanceLocked()
		return
	}

	for _, w := range c.windows {
		if !w.placeholder() {
			c.demoteLocked(w)
		}
	}
	for k := range target {
		c.promoteLocked(c.windows[(start+k)%n])
	}
	c.rotation = (start + target) % n
}

func (c *Controller) liveCountLocked() int {
	n := 0
	for _, w := range c.windows {
		if !w.placeholder() {
			n++
		}
	}
	return n
}

func (c *Controller) promoteLocked(w *window) {
	st := typewriter.New(c.resolveLocked(w.seqKey), typewriter.Options{
		Loop:      c.cfg.Loop,
		LoopDelay: c.cfg.LoopDelay,
	})
	if !c.enabled {
		st = typewriter.Pause(st)
	}
	w.state = &st
	c.scheduleLocked(w)
}

func (c *Controller) demoteLocked(w *window) {
	c.cancelLocked(w)
	w.state = nil
}

// destroyLocked cancels the timer before dropping state so no callback can reach a disposed window
func (c *Controller) destroyLocked(w *window) {
	c.cancelLocked(w)
	w.state = nil
	w.removed = true
	delete(c.byID, w.id)
	if c.focused == w {
		c.focused = nil
	}
}

func (c *Controller) focusLocked(w *window) {
	if c.focused != nil {
		c.focused.focused = false
	}
	c.maxZ++
	w.z = c.maxZ
	w.focused = true
	c.focused = w
}

func (c *Controller) assignLocked(w *window, key string) {
	w.seqKey = key
	if w.placeholder() {
		return
	}
	c.cancelLocked(w)
	st := typewriter.Reassign(*w.state, c.resolveLocked(key))
	w.state = &st
	c.scheduleLocked(w)
	c.publishLocked()
}

// resolveLocked falls back to an empty sequence for unknown keys, the window then stays inert
func (c *Controller) resolveLocked(key string) content.Sequence {
	if key == "" {
		return content.Empty(key)
	}
	seq, err := c.content.Sequence(key)
	if err != nil {
		c.logger.Warn("window content unavailable, leaving it inert", "sequence", key, "err", err)
		return content.Empty(key)
	}
	return seq
}

func (c *Controller) applyLayoutLocked() {
	live := make([]*window, 0, len(c.windows))
	for _, w := range c.windows {
		if !w.placeholder() {
			live = append(live, w)
		}
	}

	opts := layout.Options{Window: c.cfg.Window, Padding: c.cfg.Padding}
	points := layout.Compute(len(live), c.mode, c.viewport, opts, c.rng)

	size := c.cfg.Window
	if c.mode == layout.ModeUniform {
		size = layout.NewGrid(len(live), c.viewport).CellSize(c.cfg.Padding)
	}
	for i, w := range live {
		w.pos = points[i]
		w.size = size
	}
}

// scheduleLocked arms the next step of w at its own interval
func (c *Controller) scheduleLocked(w *window) {
	if c.stopped || !c.enabled || w.state == nil || !w.state.Active || w.state.Paused {
		return
	}
	c.cancelLocked(w)

	w.token++
	token := w.token
	w.last = c.clock.Now()
	w.timer = c.clock.AfterFunc(typewriter.Interval(c.speed, w.speedFactor), func() {
		c.tick(w, token)
	})
	c.pending++
	c.statPending.Store(int64(c.pending))
}

func (c *Controller) cancelLocked(w *window) {
	w.token++
	if w.timer == nil {
		return
	}
	w.timer.Stop()
	w.timer = nil
	c.pending--
	c.statPending.Store(int64(c.pending))
}

// tick runs one step for w; stale callbacks from cancelled or removed windows are dropped
func (c *Controller) tick(w *window, token uint64) {
	c.mu.Lock()

	if c.stopped || w.removed || w.token != token || w.state == nil {
		c.statZombie.Add(1)
		c.mu.Unlock()
		return
	}

	w.timer = nil
	c.pending--

	elapsed := c.clock.Now().Sub(w.last)
	before := typewriter.RevealedChars(*w.state)
	wasActive := w.state.Active
	next := typewriter.Advance(*w.state, elapsed, w.rng)
	w.state = &next
	c.statSteps.Add(1)
	if next.Active != wasActive {
		c.publishLocked()
	}

	revealed := typewriter.RevealedChars(next) - before
	notify := c.onChunk != nil && w.focused && revealed > 0
	id := w.id

	c.scheduleLocked(w)
	c.statPending.Store(int64(c.pending))
	c.mu.Unlock()

	if notify {
		c.onChunk(id, revealed)
	}
}

func (c *Controller) publishLocked() {
	var live, placeholders, inert, typing int
	for _, w := range c.windows {
		switch {
		case w.state == nil:
			placeholders++
		case w.state.Inert:
			live++
			inert++
		default:
			live++
			if w.state.Active {
				typing++
			}
		}
	}
	ratio := 0.0
	if len(c.windows) > 0 {
		ratio = float64(typing) / float64(len(c.windows))
	}
	c.statTyping.Set(ratio)
	c.statTotal.Store(int64(len(c.windows)))
	c.statLive.Store(int64(live))
	c.statPlaceholder.Store(int64(placeholders))
	c.statInert.Store(int64(inert))
	c.statCats.Store(int64(len(c.cats)))
	c.statPending.Store(int64(c.pending))
	c.statSpeed.Store(int64(c.speed))
	c.statPaused.Store(!c.enabled)
}
