package models

type ExtensionRequestModel struct {
	ID               uint    `gorm:"primaryKey"`
	SessionID        uint    `gorm:"not null;index"`
	MinutesRequested int     `gorm:"not null"`
	Status           string  `gorm:"size:20;not null;index"`
	RespondedBy      *string `gorm:"size:100"`
	RespondedAt      *int64
	ResponseMessage  *string `gorm:"size:255"`
	CreatedAt        int64   `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt        int64   `gorm:"autoUpdateTime:milli;not null"`
}

func (ExtensionRequestModel) TableName() string {
	return "extension_requests"
}
