package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BerylCAtieno/pvf-customer-form/internal/logger"
	"github.com/BerylCAtieno/pvf-customer-form/internal/models"
)

// SmartFillFailedNotice is shown to the user when Smart Fill fails.
const SmartFillFailedNotice = "Failed to generate profile. Please ensure API Key is set."

var (
	ErrUnknownField = errors.New("unknown profile field")
	// ErrNotReady is returned by TriggerAnalyze while the last name is empty.
	ErrNotReady = errors.New("last name is required before analyzing")
	// ErrInFlight is returned when the same AI operation is already running.
	ErrInFlight = errors.New("operation already in progress")
)

// Gateway is the AI service the controller drives.
type Gateway interface {
	GenerateMockProfile(ctx context.Context) (models.CustomerProfile, error)
	AnalyzeProfile(ctx context.Context, profile models.CustomerProfile) ([]models.Insight, error)
}

// State is everything the view needs to render the form.
type State struct {
	Profile      models.CustomerProfile `json:"profile"`
	Insights     []models.Insight       `json:"insights"`
	SmartFilling bool                   `json:"smartFilling"`
	Analyzing    bool                   `json:"analyzing"`
	Notice       string                 `json:"notice,omitempty"`
}

// CanAnalyze reports whether the Analyze trigger should be enabled.
func (s State) CanAnalyze() bool {
	return !s.Analyzing && s.Profile.LastName != ""
}

func (s State) clone() State {
	out := s
	out.Insights = append([]models.Insight{}, s.Insights...)
	return out
}

// Controller owns the single active profile and its insights. The lock is
// never held across a gateway call, so a response that lands after Reset or
// newer edits still applies.
type Controller struct {
	gateway Gateway
	log     *logger.Logger
	now     func() time.Time

	mu    sync.Mutex
	state State

	subMu   sync.Mutex
	subs    map[int]chan State
	nextSub int
}

type Option func(*Controller)

// WithClock replaces time.Now for the default current date.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(gateway Gateway, log *logger.Logger, opts ...Option) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Controller{
		gateway: gateway,
		log:     log.With("component", "form"),
		now:     time.Now,
		subs:    make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = State{Profile: models.DefaultProfile(c.now()), Insights: []models.Insight{}}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// EditField stores value verbatim in the named profile field.
func (c *Controller) EditField(name, value string) error {
	known := false
	c.update(func(s *State) bool {
		known = s.Profile.SetField(name, value)
		return known
	})
	if !known {
		return ErrUnknownField
	}
	return nil
}

// TriggerSmartFill replaces the profile with a generated one. On failure the
// profile is kept and a notice is set for the user. A second call while one
// is running returns ErrInFlight without reaching the gateway.
func (c *Controller) TriggerSmartFill(ctx context.Context) error {
	busy := false
	c.update(func(s *State) bool {
		if s.SmartFilling {
			busy = true
			return false
		}
		s.SmartFilling = true
		s.Notice = ""
		return true
	})
	if busy {
		return ErrInFlight
	}

	profile, err := c.gateway.GenerateMockProfile(ctx)
	if err != nil {
		c.log.Error("smart fill failed", "error", err)
		c.update(func(s *State) bool {
			s.SmartFilling = false
			s.Notice = SmartFillFailedNotice
			return true
		})
		return err
	}

	c.update(func(s *State) bool {
		s.SmartFilling = false
		s.Profile = profile
		s.Insights = []models.Insight{}
		return true
	})
	c.log.Info("smart fill applied", "customer_id", profile.CustomerID)
	return nil
}

// TriggerAnalyze replaces the insight list with a fresh analysis of the
// current profile. Failures are logged only and leave prior insights alone.
func (c *Controller) TriggerAnalyze(ctx context.Context) error {
	var (
		profile models.CustomerProfile
		err     error
	)
	c.update(func(s *State) bool {
		switch {
		case s.Analyzing:
			err = ErrInFlight
			return false
		case s.Profile.LastName == "":
			err = ErrNotReady
			return false
		}
		profile = s.Profile
		s.Analyzing = true
		return true
	})
	if err != nil {
		return err
	}

	insights, err := c.gateway.AnalyzeProfile(ctx, profile)
	if err != nil {
		c.log.Error("analyze failed", "error", err)
		c.update(func(s *State) bool {
			s.Analyzing = false
			return true
		})
		return err
	}

	c.update(func(s *State) bool {
		s.Analyzing = false
		s.Insights = append([]models.Insight{}, insights...)
		return true
	})
	c.log.Info("analysis applied", "insights", len(insights))
	return nil
}

// Reset restores the default profile and clears insights. Calls already in
// flight are not cancelled.
func (c *Controller) Reset() {
	today := c.now()
	c.update(func(s *State) bool {
		s.Profile = models.DefaultProfile(today)
		s.Insights = []models.Insight{}
		s.Notice = ""
		return true
	})
}

// DismissNotice clears the user-visible failure notice.
func (c *Controller) DismissNotice() {
	c.update(func(s *State) bool {
		if s.Notice == "" {
			return false
		}
		s.Notice = ""
		return true
	})
}

// Subscribe returns a channel receiving the state after each change. Slow
// readers only see the latest state. The returned func unsubscribes.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
			close(ch)
		})
	}
}

// update applies fn under the lock and publishes the result when fn reports
// a change.
func (c *Controller) update(fn func(*State) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn(&c.state) {
		c.publish(c.state)
	}
}

func (c *Controller) publish(s State) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s.clone():
		default:
		}
	}
}
