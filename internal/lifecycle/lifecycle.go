// Package lifecycle decides which status a run ends in. Claiming is not
// part of it: stores take ownership with their own atomic claim.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/qmuntal/stateless"

	"github.com/davidroman0O/leaselite/store"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Trigger string

const (
	TriggerComplete Trigger = "complete"
	TriggerFail     Trigger = "fail"
)

// Machine wraps a stateless machine for one run. Failures is the failure
// count including the attempt being recorded.
type Machine struct {
	fsm         *stateless.StateMachine
	failures    int
	maxFailures int
}

func New(from store.Status, failures, maxFailures int) *Machine {
	m := &Machine{
		fsm:         stateless.NewStateMachine(from),
		failures:    failures,
		maxFailures: maxFailures,
	}

	canRetry := func(_ context.Context, _ ...any) bool {
		return m.failures < m.maxFailures
	}
	exhausted := func(_ context.Context, _ ...any) bool {
		return m.failures >= m.maxFailures
	}

	// only a claimed run ends
	m.fsm.Configure(store.StatusRunning).
		Permit(TriggerComplete, store.StatusFinished).
		Permit(TriggerFail, store.StatusFailed, canRetry).
		Permit(TriggerFail, store.StatusAborted, exhausted)

	m.fsm.Configure(store.StatusIdle)
	m.fsm.Configure(store.StatusFailed)
	m.fsm.Configure(store.StatusFinished)
	m.fsm.Configure(store.StatusAborted)

	return m
}

func (m *Machine) Status() store.Status {
	return m.fsm.MustState().(store.Status)
}

func (m *Machine) Fire(trigger Trigger) (store.Status, error) {
	from := m.Status()
	if err := m.fsm.Fire(trigger); err != nil {
		return from, errors.Join(ErrInvalidTransition, fmt.Errorf("%s on %s: %w", trigger, from, err))
	}
	return m.Status(), nil
}

// Next is the status a run in from ends in after trigger.
func Next(from store.Status, trigger Trigger, failures, maxFailures int) (store.Status, error) {
	return New(from, failures, maxFailures).Fire(trigger)
}
