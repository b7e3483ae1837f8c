package models

import (
	"strings"
	"time"
)

type Address struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"default:'Address'" json:"title"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	StreetAddress string    `gorm:"not null" json:"street_address"`
	Landmark      string    `json:"landmark"`
	City          string    `gorm:"not null" json:"city"`
	State         string    `gorm:"not null" json:"state"`
	PostalCode    string    `gorm:"not null" json:"postal_code"`
	Country       string    `gorm:"not null" json:"country"`
	Phone         string    `gorm:"not null" json:"phone"`
	IsDefault     bool      `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

// SetName splits a submitted full name into the stored first/last columns.
func (a *Address) SetName(name string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	a.FirstName = parts[0]
	if len(parts) > 1 {
		a.LastName = parts[1]
	} else {
		a.LastName = ""
	}
}

// Name joins the stored columns back into a display name.
func (a *Address) Name() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// OneLine renders the shipping address the way order views present it.
func (a *Address) OneLine() string {
	line := a.StreetAddress
	if a.Landmark != "" {
		line += ", " + a.Landmark
	}
	return line + ", " + a.City + ", " + a.State + " " + a.PostalCode + ", " + a.Country
}
