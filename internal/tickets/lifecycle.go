package tickets

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusOpen      Status = "Open"
	StatusResolved  Status = "Resolved"
	StatusReopened  Status = "Reopened"
	StatusEscalated Status = "Escalated"
)

// Action is an actor-driven lifecycle transition.
type Action string

const (
	ActionResolve  Action = "resolve"
	ActionReopen   Action = "reopen"
	ActionEscalate Action = "escalate"
)

// transitions is the full lifecycle table. Escalated has no actor-driven
// transitions; escalated tickets are handled out of band.
var transitions = map[Status]map[Action]Status{
	StatusOpen: {
		ActionResolve:  StatusResolved,
		ActionEscalate: StatusEscalated,
	},
	StatusReopened: {
		ActionResolve:  StatusResolved,
		ActionEscalate: StatusEscalated,
	},
	StatusResolved: {
		ActionReopen: StatusReopened,
	},
}

// Next returns the target status for an action from the given status, and
// whether the transition is permitted at all.
func Next(from Status, action Action) (Status, bool) {
	to, ok := transitions[from][action]
	return to, ok
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusResolved, StatusReopened, StatusEscalated:
		return true
	}
	return false
}
