package models

type SessionModel struct {
	ID              uint   `gorm:"primaryKey"`
	AccessCode      string `gorm:"uniqueIndex;size:16;not null"`
	UserID          uint   `gorm:"not null;index"`
	WorkstationID   uint   `gorm:"not null;index"`
	InitialDuration int    `gorm:"not null"`
	Remaining       int    `gorm:"not null"`
	ExtendedTotal   int    `gorm:"not null;default:0"`
	Status          string `gorm:"size:20;not null;index"`
	Operator        string `gorm:"size:100"`
	Notes           string `gorm:"type:text"`
	StartedAt       *int64 `gorm:"index"`
	EndedAt         *int64 `gorm:"index"`
	Version         int    `gorm:"not null;default:1"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt       int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (SessionModel) TableName() string {
	return "sessions"
}
