package models

import (
	"time"
)

type Review struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:255;index" json:"email,omitempty"`
	City  string `gorm:"size:100" json:"city,omitempty"`

	Rating  int    `gorm:"not null;index" json:"rating"`
	Title   string `gorm:"size:200" json:"title,omitempty"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	// Date of the stay being reviewed, never in the future.
	StayDate *time.Time `json:"stayDate,omitempty"`

	Status   string `gorm:"size:32;not null;default:pending;index" json:"status"`
	Featured bool   `gorm:"default:false;index" json:"featured"`
	Verified bool   `gorm:"default:false" json:"verified"`

	Helpful     int `gorm:"default:0" json:"helpful"`
	ReportCount int `gorm:"default:0" json:"reportCount"`

	ModeratorNotes string `gorm:"type:text" json:"moderatorNotes,omitempty"`
	IPAddress      string `gorm:"size:64" json:"-"`
}

// PublicView strips moderation and contact detail for the public listing.
func (r Review) PublicView() map[string]interface{} {
	return map[string]interface{}{
		"id":        r.ID,
		"name":      r.Name,
		"city":      r.City,
		"rating":    r.Rating,
		"title":     r.Title,
		"comment":   r.Comment,
		"stayDate":  r.StayDate,
		"featured":  r.Featured,
		"helpful":   r.Helpful,
		"createdAt": r.CreatedAt,
	}
}
