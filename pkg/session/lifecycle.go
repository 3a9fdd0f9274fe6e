package session

import "fmt"

// Phase is a position in the session lifecycle.
type Phase string

const (
	PhaseUnstarted Phase = "unstarted"
	PhaseStarted   Phase = "started"
	PhaseCommitted Phase = "committed"
	PhaseDestroyed Phase = "destroyed"
)

type lifecycleEvent string

const (
	eventStart   lifecycleEvent = "start"
	eventCommit  lifecycleEvent = "commit"
	eventDestroy lifecycleEvent = "destroy"
)

// transitions is indexed as [from][event] -> to.
var transitions = map[Phase]map[lifecycleEvent]Phase{
	PhaseUnstarted: {
		eventStart:   PhaseStarted,
		eventDestroy: PhaseDestroyed,
	},
	PhaseStarted: {
		eventCommit:  PhaseCommitted,
		eventDestroy: PhaseDestroyed,
	},
	PhaseCommitted: {
		eventStart:   PhaseStarted,
		eventDestroy: PhaseDestroyed,
	},
	PhaseDestroyed: {
		eventStart:   PhaseStarted,
		eventDestroy: PhaseDestroyed,
	},
}

// lifecycle tracks the current phase and runs action before every phase change.
type lifecycle struct {
	current Phase
	action  func(from, to Phase)
}

func newLifecycle(action func(from, to Phase)) *lifecycle {
	return &lifecycle{current: PhaseUnstarted, action: action}
}

func (l *lifecycle) can(event lifecycleEvent) bool {
	_, ok := transitions[l.current][event]
	return ok
}

func (l *lifecycle) fire(event lifecycleEvent) error {
	to, ok := transitions[l.current][event]
	if !ok {
		return fmt.Errorf("no transition from phase %q for event %q", l.current, event)
	}
	if l.action != nil {
		l.action(l.current, to)
	}
	l.current = to
	return nil
}
