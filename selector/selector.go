// Package selector decides, per instrument, when the active strategy may
// change. Reclassification noise is damped three ways: a candidate must be
// recommended on consecutive cycles before it can take over, committed
// switches are separated by a cooldown, and a daily cap bounds how many
// switches any one instrument can make.
package selector

import (
	"time"

	"adaptivetrader/config"
)

// Result of one Observe call.
type Result string

const (
	// ResultInitialized: first observation, the recommendation was adopted
	// directly without gating.
	ResultInitialized Result = "initialized"
	// ResultUnchanged: recommendation already matches the active strategy.
	ResultUnchanged Result = "unchanged"
	// ResultConfirming: candidate seen again, not yet at the threshold.
	ResultConfirming Result = "confirming"
	// ResultCommitted: switch performed this cycle.
	ResultCommitted Result = "committed"
	// ResultDeferred: confirmations reached but cooldown or daily cap
	// blocked the switch; pending state is preserved.
	ResultDeferred Result = "deferred"
)

// Assignment is the per-instrument state machine state.
type Assignment struct {
	ActiveID      string
	ActivatedAt   time.Time
	PendingID     string
	Confirmations int
	LastSwitchAt  time.Time
	SwitchesToday int
	Day           string
}

// Decision reports what Observe did and why.
type Decision struct {
	Result        Result
	Active        string
	Pending       string
	Confirmations int
	Reason        string
}

// Selector owns one Assignment per instrument. Not safe for concurrent
// use; the engine evaluates instruments sequentially.
type Selector struct {
	cfg         *config.Config
	now         func() time.Time
	assignments map[string]*Assignment
}

// New builds a selector. The clock is injected so gate behavior is
// testable; pass time.Now in production.
func New(cfg *config.Config, now func() time.Time) *Selector {
	return &Selector{
		cfg:         cfg,
		now:         now,
		assignments: make(map[string]*Assignment),
	}
}

// Assignment returns a copy of the instrument's current state.
func (s *Selector) Assignment(instrument string) Assignment {
	if a := s.assignments[instrument]; a != nil {
		return *a
	}
	return Assignment{}
}

// Observe runs one state machine transition for the instrument given the
// strategy the classifier currently recommends.
func (s *Selector) Observe(instrument, recommended string) Decision {
	now := s.now()
	a := s.assignments[instrument]
	if a == nil {
		a = &Assignment{}
		s.assignments[instrument] = a
	}

	// The daily switch counter resets once per calendar-day crossing.
	if day := now.Format("2006-01-02"); day != a.Day {
		a.Day = day
		a.SwitchesToday = 0
	}

	if a.ActiveID == "" {
		a.ActiveID = recommended
		a.ActivatedAt = now
		return s.decision(a, ResultInitialized, "adopted initial strategy")
	}

	if recommended == a.ActiveID {
		a.PendingID = ""
		a.Confirmations = 0
		return s.decision(a, ResultUnchanged, "recommendation matches active strategy")
	}

	if recommended == a.PendingID {
		if a.Confirmations < s.cfg.ConfirmationsRequired {
			a.Confirmations++
		}
	} else {
		a.PendingID = recommended
		a.Confirmations = 1
	}

	if a.Confirmations < s.cfg.ConfirmationsRequired {
		return s.decision(a, ResultConfirming, "awaiting further confirmations")
	}

	if !a.LastSwitchAt.IsZero() && now.Sub(a.LastSwitchAt) < s.cfg.SwitchCooldown {
		return s.decision(a, ResultDeferred, "cooldown active")
	}
	if a.SwitchesToday >= s.cfg.MaxSwitchesPerDay {
		return s.decision(a, ResultDeferred, "daily switch cap reached")
	}

	a.ActiveID = a.PendingID
	a.ActivatedAt = now
	a.LastSwitchAt = now
	a.SwitchesToday++
	a.PendingID = ""
	a.Confirmations = 0
	return s.decision(a, ResultCommitted, "confirmations and gates satisfied")
}

func (s *Selector) decision(a *Assignment, r Result, reason string) Decision {
	return Decision{
		Result:        r,
		Active:        a.ActiveID,
		Pending:       a.PendingID,
		Confirmations: a.Confirmations,
		Reason:        reason,
	}
}
