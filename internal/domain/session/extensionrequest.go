package session

import (
	"fmt"
	"time"

	"tempus/internal/shared/errors"
)

// RequestStatus is the lifecycle state of an extension request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
	RequestExpired  RequestStatus = "expired"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestDenied, RequestExpired:
		return true
	}
	return false
}

// Extension request minute bounds.
const (
	MinExtensionMinutes = 5
	MaxExtensionMinutes = 60
)

// ExtensionRequest is a workstation-originated ask for more time on its
// session, resolved exactly once by an operator. Immutable after resolution.
type ExtensionRequest struct {
	id               uint
	sessionID        uint
	minutesRequested int
	status           RequestStatus
	respondedBy      *string
	respondedAt      *time.Time
	responseMessage  *string
	createdAt        time.Time
	updatedAt        time.Time
}

func NewExtensionRequest(sessionID uint, minutes int) (*ExtensionRequest, error) {
	if sessionID == 0 {
		return nil, fmt.Errorf("session ID is required")
	}
	if minutes < MinExtensionMinutes || minutes > MaxExtensionMinutes {
		return nil, fmt.Errorf("minutes requested must be between %d and %d", MinExtensionMinutes, MaxExtensionMinutes)
	}

	now := time.Now()
	return &ExtensionRequest{
		sessionID:        sessionID,
		minutesRequested: minutes,
		status:           RequestPending,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructExtensionRequest(
	id, sessionID uint,
	minutesRequested int,
	status RequestStatus,
	respondedBy *string,
	respondedAt *time.Time,
	responseMessage *string,
	createdAt, updatedAt time.Time,
) (*ExtensionRequest, error) {
	if id == 0 {
		return nil, fmt.Errorf("extension request ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid request status: %s", status)
	}

	return &ExtensionRequest{
		id:               id,
		sessionID:        sessionID,
		minutesRequested: minutesRequested,
		status:           status,
		respondedBy:      respondedBy,
		respondedAt:      respondedAt,
		responseMessage:  responseMessage,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (r *ExtensionRequest) ID() uint                 { return r.id }
func (r *ExtensionRequest) SessionID() uint          { return r.sessionID }
func (r *ExtensionRequest) MinutesRequested() int    { return r.minutesRequested }
func (r *ExtensionRequest) Status() RequestStatus    { return r.status }
func (r *ExtensionRequest) RespondedBy() *string     { return r.respondedBy }
func (r *ExtensionRequest) RespondedAt() *time.Time  { return r.respondedAt }
func (r *ExtensionRequest) ResponseMessage() *string { return r.responseMessage }
func (r *ExtensionRequest) CreatedAt() time.Time     { return r.createdAt }
func (r *ExtensionRequest) UpdatedAt() time.Time     { return r.updatedAt }

func (r *ExtensionRequest) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("extension request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("extension request ID cannot be zero")
	}
	r.id = id
	return nil
}

// IsPending reports whether the request still awaits an operator response.
func (r *ExtensionRequest) IsPending() bool {
	return r.status == RequestPending
}

// Approve resolves the request positively. A second resolution attempt
// fails with AlreadyResolved.
func (r *ExtensionRequest) Approve(responder, message string, now time.Time) error {
	return r.resolve(RequestApproved, responder, message, now)
}

// Deny resolves the request negatively.
func (r *ExtensionRequest) Deny(responder, message string, now time.Time) error {
	return r.resolve(RequestDenied, responder, message, now)
}

// Expire marks a request that outlived its session without a response.
func (r *ExtensionRequest) Expire(now time.Time) error {
	return r.resolve(RequestExpired, "system", "session ended before response", now)
}

func (r *ExtensionRequest) resolve(target RequestStatus, responder, message string, now time.Time) error {
	if r.status != RequestPending {
		return errors.NewAlreadyResolvedError(
			fmt.Sprintf("extension request already %s", r.status),
		)
	}
	if responder == "" {
		return errors.NewValidationError("responder is required")
	}

	r.status = target
	r.respondedBy = &responder
	r.respondedAt = &now
	if message != "" {
		r.responseMessage = &message
	}
	r.updatedAt = now
	return nil
}

// RequestedEvent builds the extension_requested event announcing a freshly
// filed request on the session channel.
func (r *ExtensionRequest) RequestedEvent(workstationID uint) Event {
	return newEvent(EventExtensionRequested, r.sessionID, workstationID, ExtensionRequestedData{
		RequestID: r.id,
		Minutes:   r.minutesRequested,
	})
}

// ResponseEvent builds the extension_response event for the workstation
// channel. newRemaining is nil for denials.
func (r *ExtensionRequest) ResponseEvent(workstationID uint, newRemaining *int) Event {
	message := ""
	if r.responseMessage != nil {
		message = *r.responseMessage
	}
	return newEvent(EventExtensionResponse, r.sessionID, workstationID, ExtensionResponseData{
		RequestID:    r.id,
		Approved:     r.status == RequestApproved,
		Minutes:      r.minutesRequested,
		NewRemaining: newRemaining,
		Message:      message,
	})
}
