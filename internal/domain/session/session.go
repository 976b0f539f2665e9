// Package session contains the session lifecycle domain: the Session and
// ExtensionRequest entities, the state machine, access code generation,
// and the typed events every transition produces.
package session

import (
	"fmt"
	"time"

	"tempus/internal/shared/errors"
)

// MinInitialDuration is the smallest accepted session duration in seconds.
const MinInitialDuration = 60

// Session is the unit of tracked time bound to one user and one workstation.
// All mutation goes through the transition methods below; each successful
// transition returns the event(s) to publish so callers never assemble
// notifications by hand.
type Session struct {
	id              uint
	accessCode      string
	userID          uint
	workstationID   uint
	initialDuration int
	remaining       int
	extendedTotal   int
	startedAt       *time.Time
	endedAt         *time.Time
	status          Status
	operator        string
	notes           string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewSession(userID, workstationID uint, initialDuration int, operator, notes string) (*Session, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if workstationID == 0 {
		return nil, fmt.Errorf("workstation ID is required")
	}
	if initialDuration < MinInitialDuration {
		return nil, fmt.Errorf("initial duration must be at least %d seconds", MinInitialDuration)
	}
	if operator == "" {
		return nil, fmt.Errorf("operator is required")
	}

	now := time.Now()
	return &Session{
		userID:          userID,
		workstationID:   workstationID,
		initialDuration: initialDuration,
		remaining:       initialDuration,
		status:          StatusPending,
		operator:        operator,
		notes:           notes,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructSession(
	id uint,
	accessCode string,
	userID, workstationID uint,
	initialDuration, remaining, extendedTotal int,
	startedAt, endedAt *time.Time,
	status Status,
	operator, notes string,
	version int,
	createdAt, updatedAt time.Time,
) (*Session, error) {
	if id == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if accessCode == "" {
		return nil, fmt.Errorf("access code is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if remaining < 0 {
		return nil, fmt.Errorf("remaining time cannot be negative")
	}

	return &Session{
		id:              id,
		accessCode:      accessCode,
		userID:          userID,
		workstationID:   workstationID,
		initialDuration: initialDuration,
		remaining:       remaining,
		extendedTotal:   extendedTotal,
		startedAt:       startedAt,
		endedAt:         endedAt,
		status:          status,
		operator:        operator,
		notes:           notes,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (s *Session) ID() uint                  { return s.id }
func (s *Session) AccessCode() string        { return s.accessCode }
func (s *Session) UserID() uint              { return s.userID }
func (s *Session) WorkstationID() uint       { return s.workstationID }
func (s *Session) InitialDuration() int      { return s.initialDuration }
func (s *Session) Remaining() int            { return s.remaining }
func (s *Session) ExtendedTotal() int        { return s.extendedTotal }
func (s *Session) StartedAt() *time.Time     { return s.startedAt }
func (s *Session) EndedAt() *time.Time       { return s.endedAt }
func (s *Session) Status() Status            { return s.status }
func (s *Session) Operator() string          { return s.operator }
func (s *Session) Notes() string             { return s.notes }
func (s *Session) Version() int              { return s.version }
func (s *Session) CreatedAt() time.Time      { return s.createdAt }
func (s *Session) UpdatedAt() time.Time      { return s.updatedAt }

func (s *Session) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Session) SetAccessCode(code string) error {
	if s.accessCode != "" {
		return fmt.Errorf("access code is already set")
	}
	if code == "" {
		return fmt.Errorf("access code cannot be empty")
	}
	s.accessCode = code
	return nil
}

// TotalDuration is the initial duration plus all top-ups.
func (s *Session) TotalDuration() int {
	return s.initialDuration + s.extendedTotal
}

// PercentUsed reports how much of the total duration has been consumed.
func (s *Session) PercentUsed() int {
	total := s.TotalDuration()
	if total <= 0 {
		return 0
	}
	used := total - s.remaining
	if used < 0 {
		used = 0
	}
	return used * 100 / total
}

// Clock renders the remaining time as mm:ss for display payloads.
func (s *Session) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.remaining/60, s.remaining%60)
}

// Start redeems the session: pending becomes active and the start time is
// stamped. The returned event goes to both the session and workstation
// channels.
func (s *Session) Start(now time.Time) (Event, error) {
	if !s.status.CanTransitionTo(StatusActive) || s.status != StatusPending {
		return Event{}, errors.NewInvalidStateError(s.status.String(), StatusActive.String())
	}

	s.status = StatusActive
	s.startedAt = &now
	s.touch()

	return newEvent(EventSessionStarted, s.id, s.workstationID, StartedData{
		AccessCode: s.accessCode,
		Remaining:  s.remaining,
	}), nil
}

// Reconnect acknowledges a repeated start on an already-active session from
// its own workstation. No timer fields change.
func (s *Session) Reconnect() (Event, error) {
	if s.status != StatusActive {
		return Event{}, errors.NewInvalidStateError(s.status.String(), StatusActive.String())
	}
	return newEvent(EventSessionStarted, s.id, s.workstationID, StartedData{
		AccessCode:  s.accessCode,
		Remaining:   s.remaining,
		Reconnected: true,
	}), nil
}

// AddTime tops up the countdown. Pending sessions may be topped up before
// they start; the extra time simply raises the balance redeemed later.
func (s *Session) AddTime(seconds int, by string) (Event, error) {
	if seconds <= 0 {
		return Event{}, errors.NewValidationError("seconds to add must be positive")
	}
	if s.status.IsTerminal() {
		return Event{}, errors.NewInvalidStateError(s.status.String(), s.status.String())
	}

	s.remaining += seconds
	s.extendedTotal += seconds
	s.touch()

	return newEvent(EventTimeAdded, s.id, s.workstationID, TimeAddedData{
		Seconds:   seconds,
		Remaining: s.remaining,
		AddedBy:   by,
	}), nil
}

// Suspend pauses the countdown.
func (s *Session) Suspend(by string) (Event, error) {
	if !s.status.CanTransitionTo(StatusSuspended) {
		return Event{}, errors.NewInvalidStateError(s.status.String(), StatusSuspended.String())
	}
	s.status = StatusSuspended
	s.touch()
	return s.timeUpdateEvent(), nil
}

// Resume restarts the countdown of a suspended session.
func (s *Session) Resume(by string) (Event, error) {
	if s.status != StatusSuspended {
		return Event{}, errors.NewInvalidStateError(s.status.String(), StatusActive.String())
	}
	s.status = StatusActive
	s.touch()
	return s.timeUpdateEvent(), nil
}

// Terminate force-closes an active or suspended session. The remaining
// balance is forfeited.
func (s *Session) Terminate(by string, reason TerminationReason, now time.Time) (Event, error) {
	if !s.status.CanTransitionTo(StatusTerminated) {
		return Event{}, errors.NewInvalidStateError(s.status.String(), StatusTerminated.String())
	}

	s.status = StatusTerminated
	s.endedAt = &now
	s.remaining = 0
	s.touch()

	return newEvent(EventSessionTerminated, s.id, s.workstationID, TerminatedData{
		Reason:  reason,
		Message: "session terminated",
	}), nil
}

// Decrement subtracts elapsed tick seconds from the countdown. Reaching
// zero expires the session; otherwise a time_update event is produced.
// Only active sessions count down.
func (s *Session) Decrement(seconds int, now time.Time) (Event, error) {
	if seconds <= 0 {
		return Event{}, errors.NewValidationError("decrement must be positive")
	}
	if s.status != StatusActive {
		return Event{}, errors.NewInvalidStateError(s.status.String(), s.status.String())
	}

	s.remaining -= seconds
	if s.remaining <= 0 {
		s.remaining = 0
		s.status = StatusExpired
		s.endedAt = &now
		s.touch()
		return newEvent(EventSessionTerminated, s.id, s.workstationID, TerminatedData{
			Reason:  ReasonExpiration,
			Message: "time is up",
		}), nil
	}

	s.touch()
	return s.timeUpdateEvent(), nil
}

// WarningEvent builds a threshold-crossing warning for this session.
func (s *Session) WarningEvent(threshold int) Event {
	level := WarningInfo
	switch {
	case threshold <= 30:
		level = WarningCritical
	case threshold <= 120:
		level = WarningWarning
	}

	var message string
	if threshold >= 60 {
		message = fmt.Sprintf("%d minute(s) remaining", threshold/60)
	} else {
		message = fmt.Sprintf("%d seconds remaining", threshold)
	}

	return newEvent(EventWarning, s.id, s.workstationID, WarningData{
		Level:     level,
		Message:   message,
		Threshold: threshold,
		Remaining: s.remaining,
	})
}

// TimeUpdateEvent builds the current countdown snapshot for subscribers.
func (s *Session) TimeUpdateEvent() Event {
	return s.timeUpdateEvent()
}

func (s *Session) timeUpdateEvent() Event {
	return newEvent(EventTimeUpdate, s.id, s.workstationID, TimeUpdateData{
		Remaining:   s.remaining,
		Clock:       s.Clock(),
		PercentUsed: s.PercentUsed(),
		Status:      s.status.String(),
	})
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
	s.version++
}
