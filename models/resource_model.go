package models

import (
	"time"

	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceDesk        ResourceType = "desk"
	ResourceMeetingRoom ResourceType = "meeting_room"
	ResourcePhoneBooth  ResourceType = "phone_booth"
	ResourceEventSpace  ResourceType = "event_space"
)

// Resource is a bookable physical asset of the workspace: a desk, a meeting
// room, a phone booth or an event space.
type Resource struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Type        ResourceType `gorm:"size:20;not null" json:"type"`
	Capacity    int          `gorm:"not null;default:1" json:"capacity"`
	HourlyRate  float64      `gorm:"type:numeric(10,2);not null;default:0.00" json:"hourly_rate"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	Floor       *string      `gorm:"size:50" json:"floor,omitempty"`
	PhotoURL    *string      `gorm:"size:255" json:"photo_url,omitempty"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
