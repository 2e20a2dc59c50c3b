package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentState string

const (
	PaymentPending  PaymentState = "pending"
	PaymentPaid     PaymentState = "paid"
	PaymentRefunded PaymentState = "refunded"
)

type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResourceID uuid.UUID `gorm:"not null;index" json:"resource_id"`
	UserID     uuid.UUID `gorm:"not null;index" json:"user_id"`
	Reference  string    `gorm:"size:12;not null;unique" json:"reference"`

	// Snapshot of Resource.Type at booking time so history survives
	// administrative edits to the resource.
	ResourceType ResourceType `gorm:"size:20;not null" json:"resource_type"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status        BookingStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus PaymentState  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	TotalAmount   float64       `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Notes         *string       `gorm:"type:text" json:"notes,omitempty"`

	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`

	IsRecurring   bool                 `gorm:"default:false" json:"is_recurring"`
	Frequency     *RecurrenceFrequency `gorm:"size:10" json:"frequency,omitempty"`
	RecurrenceEnd *time.Time           `json:"recurrence_end,omitempty"`
	SeriesID      *uuid.UUID           `gorm:"index" json:"series_id,omitempty"`

	CancelledBy *uuid.UUID `json:"cancelled_by,omitempty"`
	ReceiptURL  *string    `gorm:"size:255" json:"receipt_url,omitempty"`

	Resource Resource `gorm:"foreignkey:ResourceID" json:"resource,omitempty"`
	User     User     `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration is always derived from the interval, never stored.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// Terminal reports whether the booking is in a state no transition leaves.
func (b *Booking) Terminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}
