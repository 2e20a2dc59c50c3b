package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/mkamau589/cowork_hub/database"
	"github.com/mkamau589/cowork_hub/models"
	"github.com/mkamau589/cowork_hub/notifications"
)

// reminderWindow is the half-open [lower, upper) slice of start times one
// run covers. Runs 5 minutes apart produce adjacent windows, so a booking
// starting exactly on a boundary falls into one run, never two.
func reminderWindow(now time.Time) (lower, upper time.Time) {
	return now.Add(60 * time.Minute), now.Add(65 * time.Minute)
}

// SendBookingReminders emails members whose confirmed booking starts in
// roughly one hour. The job runs every 5 minutes, so the window is 60-65
// minutes out to hit each booking exactly once.
func SendBookingReminders() {
	lowerBound, upperBound := reminderWindow(time.Now())

	var upcoming []models.Booking
	err := database.DB.
		Preload("User").
		Preload("Resource").
		Where("status = ? AND start_time >= ? AND start_time < ?", models.BookingConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming bookings: %v", err)
		return
	}

	if len(upcoming) == 0 {
		return
	}

	for _, b := range upcoming {
		log.Printf("Sending reminder for booking %s", b.Reference)

		emailSubject := "Reminder: Your Booking Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Booking Reminder</h1><p>Hi %s,</p><p>Your booking <b>%s</b> for %s starts at %s. See you soon!</p>",
			b.User.FullName,
			b.Reference,
			b.Resource.Name,
			b.StartTime.Format(time.Kitchen),
		)

		go notifications.SendEmail(b.User.FullName, b.User.Email, emailSubject, emailBody)
	}
}
