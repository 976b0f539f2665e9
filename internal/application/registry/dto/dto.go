// Package dto defines the transport representations of registry entities.
package dto

import (
	"time"

	"tempus/internal/domain/registry"
)

type WorkstationDTO struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	Status        string     `json:"status"`
	TotalSessions int        `json:"total_sessions"`
	LastSeenAt    *time.Time `json:"last_seen_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type UserDTO struct {
	ID            uint       `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	FullName      string     `json:"full_name"`
	Active        bool       `json:"active"`
	TotalSessions int        `json:"total_sessions"`
	LastSessionAt *time.Time `json:"last_session_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToWorkstationDTO(w *registry.Workstation) *WorkstationDTO {
	return &WorkstationDTO{
		ID:            w.ID(),
		Name:          w.Name(),
		Location:      w.Location(),
		Status:        w.Status().String(),
		TotalSessions: w.TotalSessions(),
		LastSeenAt:    w.LastSeenAt(),
		CreatedAt:     w.CreatedAt(),
	}
}

func ToWorkstationDTOs(workstations []*registry.Workstation) []*WorkstationDTO {
	dtos := make([]*WorkstationDTO, 0, len(workstations))
	for _, w := range workstations {
		dtos = append(dtos, ToWorkstationDTO(w))
	}
	return dtos
}

func ToUserDTO(u *registry.User) *UserDTO {
	return &UserDTO{
		ID:            u.ID(),
		FirstName:     u.FirstName(),
		LastName:      u.LastName(),
		FullName:      u.FullName(),
		Active:        u.Active(),
		TotalSessions: u.TotalSessions(),
		LastSessionAt: u.LastSessionAt(),
		CreatedAt:     u.CreatedAt(),
	}
}

func ToUserDTOs(users []*registry.User) []*UserDTO {
	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, ToUserDTO(u))
	}
	return dtos
}
