package models

type UserModel struct {
	ID            uint   `gorm:"primaryKey"`
	FirstName     string `gorm:"size:100;not null"`
	LastName      string `gorm:"size:100"`
	Active        bool   `gorm:"not null;default:true"`
	TotalSessions int    `gorm:"not null;default:0"`
	LastSessionAt *int64
	CreatedAt     int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
