package session

import (
	"context"
	"time"
)

// SessionRepository persists sessions. Update applies an optimistic
// compare-and-swap on the entity version; a concurrent writer surfaces as
// a busy error, never a silent lost update.
type SessionRepository interface {
	Save(ctx context.Context, s *Session) error
	Update(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id uint) (*Session, error)
	FindByCode(ctx context.Context, code string) (*Session, error)
	// FindLiveByWorkstation returns the workstation's current non-terminal
	// session, or a not found error when the workstation is idle.
	FindLiveByWorkstation(ctx context.Context, workstationID uint) (*Session, error)
	// CodeInUse checks a candidate access code against non-terminal sessions.
	CodeInUse(ctx context.Context, code string) (bool, error)
	// ListActive returns the sessions currently counting down.
	ListActive(ctx context.Context) ([]*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int64, error)
	// DeleteEndedBefore removes terminated/expired sessions whose end time
	// precedes the cutoff. Used only by the retention job.
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
}

// Filter narrows session listings.
type Filter struct {
	Status        *Status
	UserID        *uint
	WorkstationID *uint
	Page          int
	PageSize      int
}

// Stats aggregates session counts for the operator dashboard.
type Stats struct {
	Total           int64
	Today           int64
	ByStatus        map[string]int64
	AvgDurationSecs int
	TotalAddedSecs  int64
}

// ExtensionRequestRepository persists extension requests.
type ExtensionRequestRepository interface {
	Save(ctx context.Context, r *ExtensionRequest) error
	Update(ctx context.Context, r *ExtensionRequest) error
	FindByID(ctx context.Context, id uint) (*ExtensionRequest, error)
	// FindPendingBySession returns the single pending request for a session,
	// or a not found error.
	FindPendingBySession(ctx context.Context, sessionID uint) (*ExtensionRequest, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]*ExtensionRequest, error)
	ListBySession(ctx context.Context, sessionID uint) ([]*ExtensionRequest, error)
}
