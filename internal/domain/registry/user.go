package registry

import (
	"fmt"
	"strings"
	"time"
)

// User is a patron of the public workstations. The session engine reads
// the display name and bumps usage counters; everything else about users
// is managed elsewhere.
type User struct {
	id            uint
	firstName     string
	lastName      string
	active        bool
	totalSessions int
	lastSessionAt *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(firstName, lastName string) (*User, error) {
	if firstName == "" && lastName == "" {
		return nil, fmt.Errorf("user name is required")
	}
	now := time.Now()
	return &User{
		firstName: firstName,
		lastName:  lastName,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(
	id uint,
	firstName, lastName string,
	active bool,
	totalSessions int,
	lastSessionAt *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		active:        active,
		totalSessions: totalSessions,
		lastSessionAt: lastSessionAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (u *User) ID() uint                  { return u.id }
func (u *User) FirstName() string         { return u.firstName }
func (u *User) LastName() string          { return u.lastName }
func (u *User) Active() bool              { return u.active }
func (u *User) TotalSessions() int        { return u.totalSessions }
func (u *User) LastSessionAt() *time.Time { return u.lastSessionAt }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	u.id = id
	return nil
}

// FullName is the display name shown on dashboards and workstations.
func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// RecordSession bumps the usage counter and last-session stamp on start.
func (u *User) RecordSession(now time.Time) {
	u.totalSessions++
	u.lastSessionAt = &now
	u.updatedAt = now
}
