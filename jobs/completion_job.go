package jobs

import (
	"context"
	"log"
	"time"

	"github.com/mkamau589/cowork_hub/booking"
)

// CompleteElapsedBookings sweeps confirmed bookings whose end time has
// passed into the completed state. Bookings that were checked out complete
// immediately; this catches the ones where nobody pressed the button.
func CompleteElapsedBookings(engine *booking.Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	affected, err := engine.CompleteElapsed(ctx)
	if err != nil {
		log.Printf("Error completing elapsed bookings: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("Marked %d booking(s) as completed.", affected)
	}
}
