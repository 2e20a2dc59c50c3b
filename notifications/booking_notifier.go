package notifications

import (
	"fmt"
	"log"
	"time"

	"github.com/mkamau589/cowork_hub/booking"
	"github.com/mkamau589/cowork_hub/models"
	ws "github.com/mkamau589/cowork_hub/websocket"
	"gorm.io/gorm"
)

// BookingNotifier fans booking lifecycle events out to email and to the
// live dashboard feed. It satisfies booking.Notifier; the engine invokes it
// on its own goroutine and ignores failures.
type BookingNotifier struct {
	db *gorm.DB
}

func NewBookingNotifier(db *gorm.DB) *BookingNotifier {
	return &BookingNotifier{db: db}
}

func (n *BookingNotifier) BookingEvent(event string, b models.Booking) {
	ws.Publish(ws.Event{
		Type:       event,
		BookingID:  b.ID,
		ResourceID: b.ResourceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
	})

	var user models.User
	if err := n.db.First(&user, "id = ?", b.UserID).Error; err != nil {
		log.Printf("🔥 Cannot email booking %s, user lookup failed: %v", b.ID, err)
		return
	}
	var resource models.Resource
	if err := n.db.First(&resource, "id = ?", b.ResourceID).Error; err != nil {
		log.Printf("🔥 Cannot email booking %s, resource lookup failed: %v", b.ID, err)
		return
	}

	subject, body := bookingEmail(event, b, resource)
	if subject == "" {
		return
	}
	SendEmail(user.FullName, user.Email, subject, body)
}

func bookingEmail(event string, b models.Booking, res models.Resource) (subject, body string) {
	when := fmt.Sprintf("%s from %s to %s",
		b.StartTime.Format("Monday, January 2"),
		b.StartTime.Format(time.Kitchen),
		b.EndTime.Format(time.Kitchen))

	switch event {
	case booking.EventCreated:
		if b.Status == models.BookingConfirmed {
			return "Your Booking is Confirmed!",
				fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your booking <b>%s</b> for %s is confirmed for %s.</p>", b.Reference, res.Name, when)
		}
		return "We Received Your Booking Request",
			fmt.Sprintf("<h1>Booking Received</h1><p>Your booking <b>%s</b> for %s on %s is pending payment.</p>", b.Reference, res.Name, when)
	case booking.EventConfirmed:
		return "Payment Received - Booking Confirmed",
			fmt.Sprintf("<h1>Booking Confirmed</h1><p>We received your payment. <b>%s</b> (%s) is booked for %s.</p>", b.Reference, res.Name, when)
	case booking.EventCancelled:
		return "Your Booking Was Cancelled",
			fmt.Sprintf("<h1>Booking Cancelled</h1><p>Booking <b>%s</b> for %s on %s has been cancelled.</p>", b.Reference, res.Name, when)
	case booking.EventCompleted:
		return "Thanks for Visiting!",
			fmt.Sprintf("<h1>Booking Completed</h1><p>Your booking <b>%s</b> for %s is complete. Your receipt will be available shortly.</p>", b.Reference, res.Name)
	}
	return "", ""
}
