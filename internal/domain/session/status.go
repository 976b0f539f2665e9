package session

// Status represents the lifecycle state of a session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusActive     Status = "active"
	StatusSuspended  Status = "suspended"
	StatusTerminated Status = "terminated"
	StatusExpired    Status = "expired"
)

// validTransitions encodes the session state machine. Terminal states have
// no outgoing edges.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusActive},
	StatusActive:     {StatusSuspended, StatusTerminated, StatusExpired},
	StatusSuspended:  {StatusActive, StatusTerminated},
	StatusTerminated: {},
	StatusExpired:    {},
}

func NewStatus(s string) (Status, bool) {
	status := Status(s)
	return status, status.IsValid()
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no transition can leave this state.
func (s Status) IsTerminal() bool {
	return s == StatusTerminated || s == StatusExpired
}

// IsLive reports whether the session currently holds a workstation
// (counting down or paused).
func (s Status) IsLive() bool {
	return s == StatusActive || s == StatusSuspended
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
