package listquery

import (
	"time"

	"github.com/me/backoffice/internal/period"
)

// Controller owns the list state of one page. It is not safe for concurrent
// use: the owner feeds it events one at a time, including the values it
// receives from Committed.
type Controller struct {
	state     State
	resolver  *period.Resolver
	debouncer *Debouncer
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounceDelay overrides DebounceDelay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.debouncer = NewDebouncer(d)
	}
}

// WithState starts the controller from s instead of DefaultState.
func WithState(s State) Option {
	return func(c *Controller) {
		c.state = s
	}
}

// NewController creates a Controller resolving periods with r.
func NewController(r *period.Resolver, opts ...Option) *Controller {
	c := &Controller{
		state:    DefaultState(),
		resolver: r,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.debouncer == nil {
		c.debouncer = NewDebouncer(DebounceDelay)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Params returns the fetch parameters for the current state.
func (c *Controller) Params() Params {
	return ParamsFor(c.state, c.resolver)
}

// OnSearchChange records raw search text. The value reaches Params only
// after it is delivered on Committed and passed to CommitSearch.
func (c *Controller) OnSearchChange(text string) {
	c.state.SearchText = text
	c.debouncer.Trigger(text)
}

// Committed delivers debounced search values.
func (c *Controller) Committed() <-chan string {
	return c.debouncer.Output()
}

// CommitSearch applies a debounced search value. It reports whether the
// fetch parameters changed.
func (c *Controller) CommitSearch(text string) bool {
	return c.apply(SearchEvent{Text: text})
}

// OnPeriodChange handles a click on a period button.
func (c *Controller) OnPeriodChange(p period.Period) bool {
	return c.apply(PeriodEvent{Period: p})
}

// OnMonthSelect handles a choice in the month sub-selector.
func (c *Controller) OnMonthSelect(m period.YearMonth) bool {
	return c.apply(MonthEvent{Month: m})
}

// OnPageSizeChange switches to page size n. Sizes outside PageSizes are
// ignored.
func (c *Controller) OnPageSizeChange(n int) bool {
	return c.apply(PageSizeEvent{Size: n})
}

// OnPageChange moves to page n.
func (c *Controller) OnPageChange(n int) bool {
	return c.apply(PageEvent{Page: n})
}

// Close stops any pending debounce timer.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

func (c *Controller) apply(e Event) bool {
	before := c.Params()
	raw := c.state.SearchText
	c.state = Reduce(c.state, e)
	if _, ok := e.(SearchEvent); ok {
		// The input keeps showing what was typed since the commit was scheduled.
		c.state.SearchText = raw
	}
	return c.Params() != before
}
