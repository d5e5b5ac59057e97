package panel

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/model"
)

// ErrDuplicateID is returned by CreateItem when the id is already hosted.
var ErrDuplicateID = errors.New("panel item id already exists")

// Option configures a Panel.
type Option func(*Panel)

// WithLogger sets the panel logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Panel) { p.logger = logging.OrNop(logger) }
}

// WithAnimationDuration sets the collapse/expand transition length.
func WithAnimationDuration(d time.Duration) Option {
	return func(p *Panel) {
		if d > 0 {
			p.animDuration = d
		}
	}
}

// WithCollapsed sets the initial collapsed flag. Panels start collapsed.
func WithCollapsed(collapsed bool) Option {
	return func(p *Panel) { p.collapsed = collapsed }
}

// WithClock replaces the timer source used for animations.
func WithClock(clock Clock) Option {
	return func(p *Panel) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// Panel hosts a collection of items and aggregates their progress.
type Panel struct {
	mu sync.Mutex

	logger       *zap.Logger
	clock        Clock
	animDuration time.Duration

	items []*Item          // insertion order = display order
	index map[string]*Item // id -> item

	count     int // attached progress items, recomputed after every mutation
	percent   int
	collapsed bool
	phase     model.LayoutPhase

	anim    *animation
	animSeq uint64

	subs    []subscription
	nextSub uint64

	queue    []Event // undelivered events, mutation order
	draining bool    // a goroutine is delivering queue
	closed   bool
}

// New creates an empty panel with no summary.
func New(opts ...Option) *Panel {
	p := &Panel{
		logger:       zap.NewNop(),
		clock:        realClock{},
		animDuration: DefaultAnimationDuration,
		index:        make(map[string]*Item),
		collapsed:    true,
		phase:        model.LayoutSettled,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe registers a listener and returns a function that removes it.
func (p *Panel) Subscribe(fn Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextSub++
	id := p.nextSub
	p.subs = append(p.subs, subscription{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// CreateItem appends a detached progress item at 0%.
func (p *Panel) CreateItem(id string) (*Item, error) {
	p.mu.Lock()
	if _, exists := p.index[id]; exists {
		p.mu.Unlock()
		return nil, fmt.Errorf("create item %q: %w", id, ErrDuplicateID)
	}

	item := &Item{panel: p, state: *model.NewPanelItem(id)}
	p.items = append(p.items, item)
	p.index[id] = item

	p.logger.Debug("panel item created", zap.String("id", id), zap.Int("items", len(p.items)))
	p.unlockAndDispatch([]Event{p.eventLocked(EventItemAdded, item)})
	return item, nil
}

// AttachItem displays an item hosted by this panel. Items that were removed,
// belong to another panel, or are already attached are ignored.
func (p *Panel) AttachItem(item *Item) {
	if item == nil {
		return
	}

	p.mu.Lock()
	if !p.ownsLocked(item) || item.state.Attached {
		p.mu.Unlock()
		return
	}

	item.state.Attached = true
	p.logger.Debug("panel item attached", zap.String("id", item.state.ID))

	events := []Event{p.eventLocked(EventItemAttached, item)}
	events = p.recomputeLocked(events)
	p.unlockAndDispatch(events)
}

// AddItem creates an item and attaches it.
func (p *Panel) AddItem(id string) (*Item, error) {
	item, err := p.CreateItem(id)
	if err != nil {
		return nil, err
	}
	p.AttachItem(item)
	return item, nil
}

// RemoveItem drops an item whether or not it is attached. Unknown items are
// ignored.
func (p *Panel) RemoveItem(item *Item) {
	if item == nil {
		return
	}

	p.mu.Lock()
	if !p.ownsLocked(item) {
		p.mu.Unlock()
		return
	}

	for i, it := range p.items {
		if it == item {
			p.items = append(p.items[:i], p.items[i+1:]...)
			break
		}
	}
	delete(p.index, item.state.ID)

	ev := p.eventLocked(EventItemRemoved, item)
	item.state.Attached = false
	p.logger.Debug("panel item removed", zap.String("id", item.state.ID), zap.Int("items", len(p.items)))

	events := p.recomputeLocked([]Event{ev})
	p.unlockAndDispatch(events)
}

// FindByID returns the item with the given id, or nil.
func (p *Panel) FindByID(id string) *Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index[id]
}

// UpdateProgress recomputes the summary percentage as the rounded mean of
// attached progress items. With nothing to average the previous value stays.
func (p *Panel) UpdateProgress() {
	p.mu.Lock()
	var events []Event
	if p.updateProgressLocked() && summaryVisible(p.count) {
		events = append(events, p.eventLocked(EventSummaryUpdated, nil))
	}
	p.unlockAndDispatch(events)
}

// SetCollapsed switches between the summary-only and the full-list layout.
// While the summary is shown the switch runs a timed transition; a new
// request during a transition cancels it and starts over.
func (p *Panel) SetCollapsed(collapsed bool) {
	p.mu.Lock()
	events := p.setCollapsedLocked(collapsed)
	p.unlockAndDispatch(events)
}

// Toggle flips the collapsed flag.
func (p *Panel) Toggle() {
	p.mu.Lock()
	events := p.setCollapsedLocked(!p.collapsed)
	p.unlockAndDispatch(events)
}

// SetAnimationDuration changes the length of transitions started from now
// on. Non-positive values are ignored.
func (p *Panel) SetAnimationDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.animDuration = d
}

// SetItemProgress updates the progress of the item with the given id.
func (p *Panel) SetItemProgress(id string, percent int) {
	if item := p.FindByID(id); item != nil {
		item.SetProgress(percent)
	}
}

// SetItemText updates the text lines of the item with the given id.
func (p *Panel) SetItemText(id, primary, secondary string) {
	if item := p.FindByID(id); item != nil {
		item.SetText(primary, secondary)
	}
}

// SetItemStatus updates the indicator of the item with the given id.
func (p *Panel) SetItemStatus(id string, status model.ItemStatus) {
	if item := p.FindByID(id); item != nil {
		item.SetStatus(status)
	}
}

// Items returns a snapshot of all items in display order.
func (p *Panel) Items() []model.PanelItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.PanelItem, 0, len(p.items))
	for _, it := range p.items {
		out = append(out, it.state.Clone())
	}
	return out
}

// Len returns the number of hosted items.
func (p *Panel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Summary returns a snapshot of the summary row.
func (p *Panel) Summary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summaryLocked()
}

// State returns the summary visibility state.
func (p *Panel) State() model.SummaryState {
	return p.Summary().State
}

// Close cancels any in-flight transition. Later collapse changes only store
// the flag.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.anim != nil {
		p.anim.timer.Stop()
		p.anim = nil
	}
	p.phase = model.LayoutSettled
}

func (p *Panel) ownsLocked(item *Item) bool {
	return item.panel == p && p.index[item.state.ID] == item
}

func (p *Panel) aggregatedCountLocked() int {
	n := 0
	for _, it := range p.items {
		if it.state.IsAggregated() {
			n++
		}
	}
	return n
}

// recomputeLocked refreshes the attached progress count and emits the
// summary transitions it implies.
func (p *Panel) recomputeLocked(events []Event) []Event {
	prevCount := p.count
	wasVisible := summaryVisible(prevCount)

	p.count = p.aggregatedCountLocked()
	visible := summaryVisible(p.count)

	changed := false
	if visible {
		changed = p.updateProgressLocked()
	}

	switch {
	case !wasVisible && visible:
		p.logger.Debug("panel summary shown", zap.Int("count", p.count), zap.Int("percent", p.percent))
		events = append(events, p.eventLocked(EventSummaryShown, nil))
	case wasVisible && !visible:
		if p.anim != nil {
			p.anim.timer.Stop()
			p.anim = nil
			events = append(events, p.eventLocked(EventCollapseCancelled, nil))
		}
		p.phase = model.LayoutSettled
		p.logger.Debug("panel summary removed", zap.Int("count", p.count))
		events = append(events, p.eventLocked(EventSummaryRemoved, nil))
	case visible && (changed || prevCount != p.count):
		events = append(events, p.eventLocked(EventSummaryUpdated, nil))
	}
	return events
}

func (p *Panel) updateProgressLocked() bool {
	if len(p.items) == 0 {
		return false
	}

	total, n := 0, 0
	for _, it := range p.items {
		if it.state.IsAggregated() {
			total += it.state.ProgressPercent
			n++
		}
	}
	if n == 0 {
		return false
	}

	percent := int(math.Round(float64(total) / float64(n)))
	if percent == p.percent {
		return false
	}
	p.percent = percent
	return true
}

func (p *Panel) setCollapsedLocked(collapsed bool) []Event {
	if p.collapsed == collapsed {
		return nil
	}
	p.collapsed = collapsed
	p.logger.Debug("panel collapsed flag changed", zap.Bool("collapsed", collapsed))

	if !summaryVisible(p.count) || p.closed {
		return nil
	}
	return p.startAnimationLocked(collapsed)
}

func (p *Panel) startAnimationLocked(collapsing bool) []Event {
	var events []Event
	if p.anim != nil {
		p.anim.timer.Stop()
		p.anim = nil
		events = append(events, p.eventLocked(EventCollapseCancelled, nil))
	}

	p.animSeq++
	seq := p.animSeq
	if collapsing {
		p.phase = model.LayoutCollapsing
	} else {
		p.phase = model.LayoutExpanding
	}
	p.anim = &animation{seq: seq, collapsing: collapsing}
	p.anim.timer = p.clock.AfterFunc(p.animDuration, func() { p.finishAnimation(seq) })

	return append(events, p.eventLocked(EventCollapseStarted, nil))
}

// finishAnimation settles the layout unless the transition was superseded.
func (p *Panel) finishAnimation(seq uint64) {
	p.mu.Lock()
	if p.anim == nil || p.anim.seq != seq {
		p.mu.Unlock()
		return
	}
	p.anim = nil
	p.phase = model.LayoutSettled
	p.unlockAndDispatch([]Event{p.eventLocked(EventCollapseFinished, nil)})
}

func (p *Panel) summaryLocked() Summary {
	state := model.SummaryNone
	if summaryVisible(p.count) {
		if p.collapsed {
			state = model.SummaryCollapsed
		} else {
			state = model.SummaryExpanded
		}
	}
	return Summary{
		State:     state,
		Percent:   p.percent,
		Count:     p.count,
		Collapsed: p.collapsed,
		Phase:     p.phase,
	}
}

func (p *Panel) eventLocked(t EventType, item *Item) Event {
	ev := Event{Type: t, Summary: p.summaryLocked()}
	if item != nil {
		ev.Item = item.state.Clone()
	}
	return ev
}

// unlockAndDispatch queues events, releases p.mu and delivers the queue
// unless another goroutine is already doing so. Listeners run with no panel
// lock held; events reach them in mutation order.
func (p *Panel) unlockAndDispatch(events []Event) {
	if len(events) == 0 || len(p.subs) == 0 {
		p.mu.Unlock()
		return
	}

	p.queue = append(p.queue, events...)
	if p.draining {
		p.mu.Unlock()
		return
	}
	p.draining = true

	for {
		batch := p.queue
		p.queue = nil
		subs := make([]subscription, len(p.subs))
		copy(subs, p.subs)
		p.mu.Unlock()

		for _, ev := range batch {
			for _, s := range subs {
				s.fn(ev)
			}
		}

		p.mu.Lock()
		if len(p.queue) == 0 {
			p.draining = false
			p.mu.Unlock()
			return
		}
	}
}
