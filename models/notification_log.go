package models

import (
	"time"

	"gorm.io/datatypes"
)

// Email dispatch outcomes.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
	NotificationMocked = "mocked"
)

// NotificationLog records every outbound email attempt. Sending is
// best-effort, so this table is the only place a lost notification can be
// diagnosed from.
type NotificationLog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`

	Kind      string `gorm:"size:64;not null;index" json:"kind"`
	Recipient string `gorm:"size:255;not null" json:"recipient"`
	Subject   string `gorm:"size:255" json:"subject"`

	Status string `gorm:"size:32;not null;index" json:"status"`
	Error  string `gorm:"type:text" json:"error,omitempty"`

	Meta datatypes.JSON `json:"meta,omitempty"`
}
