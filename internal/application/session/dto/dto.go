package dto

import (
	"time"

	"tempus/internal/domain/session"
)

type SessionDTO struct {
	ID              uint       `json:"id"`
	AccessCode      string     `json:"access_code"`
	UserID          uint       `json:"user_id"`
	WorkstationID   uint       `json:"workstation_id"`
	InitialDuration int        `json:"initial_duration"`
	Remaining       int        `json:"remaining"`
	ExtendedTotal   int        `json:"extended_total"`
	TotalDuration   int        `json:"total_duration"`
	PercentUsed     int        `json:"percent_used"`
	Clock           string     `json:"clock"`
	Status          string     `json:"status"`
	Operator        string     `json:"operator,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	StartedAt       *time.Time `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ExtensionRequestDTO struct {
	ID               uint       `json:"id"`
	SessionID        uint       `json:"session_id"`
	MinutesRequested int        `json:"minutes_requested"`
	Status           string     `json:"status"`
	RespondedBy      *string    `json:"responded_by"`
	RespondedAt      *time.Time `json:"responded_at"`
	ResponseMessage  *string    `json:"response_message"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToSessionDTO(s *session.Session) *SessionDTO {
	if s == nil {
		return nil
	}

	return &SessionDTO{
		ID:              s.ID(),
		AccessCode:      s.AccessCode(),
		UserID:          s.UserID(),
		WorkstationID:   s.WorkstationID(),
		InitialDuration: s.InitialDuration(),
		Remaining:       s.Remaining(),
		ExtendedTotal:   s.ExtendedTotal(),
		TotalDuration:   s.TotalDuration(),
		PercentUsed:     s.PercentUsed(),
		Clock:           s.Clock(),
		Status:          s.Status().String(),
		Operator:        s.Operator(),
		Notes:           s.Notes(),
		StartedAt:       s.StartedAt(),
		EndedAt:         s.EndedAt(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
	}
}

func ToSessionDTOs(sessions []*session.Session) []*SessionDTO {
	dtos := make([]*SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		dtos = append(dtos, ToSessionDTO(s))
	}
	return dtos
}

func ToExtensionRequestDTO(r *session.ExtensionRequest) *ExtensionRequestDTO {
	if r == nil {
		return nil
	}

	return &ExtensionRequestDTO{
		ID:               r.ID(),
		SessionID:        r.SessionID(),
		MinutesRequested: r.MinutesRequested(),
		Status:           r.Status().String(),
		RespondedBy:      r.RespondedBy(),
		RespondedAt:      r.RespondedAt(),
		ResponseMessage:  r.ResponseMessage(),
		CreatedAt:        r.CreatedAt(),
	}
}

func ToExtensionRequestDTOs(requests []*session.ExtensionRequest) []*ExtensionRequestDTO {
	dtos := make([]*ExtensionRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, ToExtensionRequestDTO(r))
	}
	return dtos
}
