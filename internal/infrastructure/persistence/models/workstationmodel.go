package models

type WorkstationModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"uniqueIndex;size:100;not null"`
	Location      string `gorm:"size:255"`
	Status        string `gorm:"size:20;not null;index"`
	TokenHash     string `gorm:"size:255"`
	TotalSessions int    `gorm:"not null;default:0"`
	LastSeenAt    *int64
	CreatedAt     int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (WorkstationModel) TableName() string {
	return "workstations"
}
