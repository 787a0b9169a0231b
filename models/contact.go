package models

import (
	"time"
)

type Contact struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:255;not null;index" json:"email"`
	Phone string `gorm:"size:32" json:"phone,omitempty"`

	Subject string `gorm:"size:200;default:Întrebare generală" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status   string `gorm:"size:32;not null;default:new;index" json:"status"`
	Priority string `gorm:"size:32;not null;default:medium;index" json:"priority"`

	Source    string `gorm:"size:64;default:website" json:"source"`
	IPAddress string `gorm:"size:64" json:"ipAddress,omitempty"`
	UserAgent string `gorm:"type:text" json:"userAgent,omitempty"`

	Replied   bool       `gorm:"default:false" json:"replied"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
}
