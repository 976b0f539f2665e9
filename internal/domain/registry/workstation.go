// Package registry holds the user and workstation registries the session
// engine consults. These are plain lookup entities; the engine reads them
// for display fields and bumps usage counters on session start.
package registry

import (
	"fmt"
	"time"
)

// WorkstationStatus is the availability state of a physical workstation.
type WorkstationStatus string

const (
	WorkstationAvailable   WorkstationStatus = "available"
	WorkstationOccupied    WorkstationStatus = "occupied"
	WorkstationMaintenance WorkstationStatus = "maintenance"
	WorkstationOffline     WorkstationStatus = "offline"
)

func (s WorkstationStatus) String() string { return string(s) }

// Workstation is a public machine that redeems access codes. Its identity
// token is enrolled out of band; the engine only ever sees the bcrypt hash.
type Workstation struct {
	id            uint
	name          string
	location      string
	status        WorkstationStatus
	tokenHash     string
	totalSessions int
	lastSeenAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewWorkstation(name, location, tokenHash string) (*Workstation, error) {
	if name == "" {
		return nil, fmt.Errorf("workstation name is required")
	}
	now := time.Now()
	return &Workstation{
		name:      name,
		location:  location,
		status:    WorkstationAvailable,
		tokenHash: tokenHash,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructWorkstation(
	id uint,
	name, location string,
	status WorkstationStatus,
	tokenHash string,
	totalSessions int,
	lastSeenAt *time.Time,
	createdAt, updatedAt time.Time,
) *Workstation {
	return &Workstation{
		id:            id,
		name:          name,
		location:      location,
		status:        status,
		tokenHash:     tokenHash,
		totalSessions: totalSessions,
		lastSeenAt:    lastSeenAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (w *Workstation) ID() uint                  { return w.id }
func (w *Workstation) Name() string              { return w.name }
func (w *Workstation) Location() string          { return w.location }
func (w *Workstation) Status() WorkstationStatus { return w.status }
func (w *Workstation) TokenHash() string         { return w.tokenHash }
func (w *Workstation) TotalSessions() int        { return w.totalSessions }
func (w *Workstation) LastSeenAt() *time.Time    { return w.lastSeenAt }
func (w *Workstation) CreatedAt() time.Time      { return w.createdAt }
func (w *Workstation) UpdatedAt() time.Time      { return w.updatedAt }

func (w *Workstation) SetID(id uint) error {
	if w.id != 0 {
		return fmt.Errorf("workstation ID is already set")
	}
	w.id = id
	return nil
}

// IsAvailable reports whether a new session may start here.
func (w *Workstation) IsAvailable() bool {
	return w.status == WorkstationAvailable
}

func (w *Workstation) MarkOccupied() {
	w.status = WorkstationOccupied
	w.updatedAt = time.Now()
}

func (w *Workstation) MarkAvailable() {
	w.status = WorkstationAvailable
	w.updatedAt = time.Now()
}

// RecordSession bumps the usage counter and the last-seen stamp on
// session start.
func (w *Workstation) RecordSession(now time.Time) {
	w.totalSessions++
	w.lastSeenAt = &now
	w.updatedAt = now
}

// Touch refreshes the last-seen stamp on heartbeat traffic.
func (w *Workstation) Touch(now time.Time) {
	w.lastSeenAt = &now
	w.updatedAt = now
}
