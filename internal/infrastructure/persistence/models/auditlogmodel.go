package models

import "gorm.io/datatypes"

type AuditLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	Action    string `gorm:"size:50;not null;index"`
	Actor     string `gorm:"size:100;index"`
	SessionID *uint  `gorm:"index"`
	Metadata  datatypes.JSON
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
