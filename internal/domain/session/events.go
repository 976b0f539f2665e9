package session

import "time"

// EventType identifies a session event published to subscribers.
type EventType string

const (
	EventTimeUpdate        EventType = "time_update"
	EventTimeAdded         EventType = "time_added"
	EventSessionStarted    EventType = "session_started"
	EventSessionTerminated EventType = "session_terminated"
	EventWarning            EventType = "warning"
	EventExtensionRequested EventType = "extension_requested"
	EventExtensionResponse  EventType = "extension_response"
)

// TerminationReason explains why a session ended.
type TerminationReason string

const (
	ReasonNormalClose TerminationReason = "normal_close"
	ReasonForcedClose TerminationReason = "forced_close"
	ReasonExpiration  TerminationReason = "expiration"
)

// WarningLevel escalates as the remaining-time threshold shrinks.
type WarningLevel string

const (
	WarningInfo     WarningLevel = "info"
	WarningWarning  WarningLevel = "warning"
	WarningCritical WarningLevel = "critical"
)

// Event is the unit of notification fan-out. Every successful state
// transition produces one or more events addressed to the session channel
// and the owning workstation channel.
type Event struct {
	Type          EventType `json:"type"`
	SessionID     uint      `json:"session_id"`
	WorkstationID uint      `json:"workstation_id"`
	Timestamp     int64     `json:"timestamp"`
	Data          any       `json:"data,omitempty"`
}

// TimeUpdateData carries the per-tick countdown snapshot.
type TimeUpdateData struct {
	Remaining   int    `json:"remaining"`
	Clock       string `json:"clock"`
	PercentUsed int    `json:"percent_used"`
	Status      string `json:"status"`
}

// TimeAddedData announces a manual or approved time top-up.
type TimeAddedData struct {
	Seconds   int    `json:"seconds"`
	Remaining int    `json:"remaining"`
	AddedBy   string `json:"added_by"`
}

// StartedData confirms redemption; Reconnected marks the no-op restart of
// an already-active session from the same workstation.
type StartedData struct {
	AccessCode  string `json:"access_code"`
	Remaining   int    `json:"remaining"`
	Reconnected bool   `json:"reconnected"`
}

// TerminatedData announces the end of a session, forced or expired.
type TerminatedData struct {
	Reason  TerminationReason `json:"reason"`
	Message string            `json:"message"`
}

// WarningData is a remaining-time threshold crossing.
type WarningData struct {
	Level     WarningLevel `json:"level"`
	Message   string       `json:"message"`
	Threshold int          `json:"threshold"`
	Remaining int          `json:"remaining"`
}

// ExtensionRequestedData alerts operator dashboards that a workstation
// filed a new extension request.
type ExtensionRequestedData struct {
	RequestID uint `json:"request_id"`
	Minutes   int  `json:"minutes"`
}

// ExtensionResponseData is delivered to the workstation channel when an
// operator resolves an extension request.
type ExtensionResponseData struct {
	RequestID    uint   `json:"request_id"`
	Approved     bool   `json:"approved"`
	Minutes      int    `json:"minutes"`
	NewRemaining *int   `json:"new_remaining,omitempty"`
	Message      string `json:"message,omitempty"`
}

func newEvent(t EventType, sessionID, workstationID uint, data any) Event {
	return Event{
		Type:          t,
		SessionID:     sessionID,
		WorkstationID: workstationID,
		Timestamp:     time.Now().Unix(),
		Data:          data,
	}
}
