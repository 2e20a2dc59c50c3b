package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/booking"
	"github.com/mkamau589/cowork_hub/models"
	"github.com/mkamau589/cowork_hub/services"
)

// BookingHandler carries the injected engine; the booking routes are the
// only HTTP surface that touches scheduling state.
type BookingHandler struct {
	Engine *booking.Engine
}

func NewBookingHandler(engine *booking.Engine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

type RecurringRequest struct {
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type CreateBookingRequest struct {
	ResourceID string            `json:"resource_id" validate:"required,uuid"`
	StartTime  string            `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime    string            `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Notes      *string           `json:"notes,omitempty"`
	Recurring  *RecurringRequest `json:"recurring,omitempty"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resourceID, _ := uuid.Parse(req.ResourceID)
	start, _ := time.Parse(time.RFC3339, req.StartTime)
	end, _ := time.Parse(time.RFC3339, req.EndTime)

	engineReq := booking.Request{
		ResourceID: resourceID,
		UserID:     actor.UserID,
		Interval:   booking.Interval{Start: start, End: end},
		Notes:      req.Notes,
	}
	if req.Recurring != nil {
		until, _ := time.Parse(time.RFC3339, req.Recurring.EndDate)
		engineReq.Recurring = &booking.Recurrence{
			Frequency: models.RecurrenceFrequency(req.Recurring.Frequency),
			Until:     until,
		}
	}

	created, err := h.Engine.RequestBooking(c.UserContext(), engineReq)
	if err != nil {
		return engineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Booking created successfully",
		"bookings": created,
	})
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	bookings, err := h.Engine.ListUserBookings(c.UserContext(), actor.UserID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	cancelled, err := h.Engine.Cancel(c.UserContext(), bookingID, actor)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Booking cancelled",
		"booking": cancelled,
	})
}

func (h *BookingHandler) CheckIn(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	checked, err := h.Engine.CheckIn(c.UserContext(), bookingID, actor)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Checked in",
		"booking": checked,
	})
}

func (h *BookingHandler) CheckOut(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	done, err := h.Engine.CheckOut(c.UserContext(), bookingID, actor)
	if err != nil {
		return engineError(c, err)
	}

	go services.GenerateReceipt(done.ID.String())

	return c.JSON(fiber.Map{
		"message": "Checked out, booking completed",
		"booking": done,
	})
}

// GetAvailability returns the free sub-intervals of a resource within the
// requested window.
func (h *BookingHandler) GetAvailability(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("resourceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid resource id"})
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'from' must be RFC3339"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'to' must be RFC3339"})
	}

	free, err := h.Engine.ResourceAvailability(c.UserContext(), resourceID,
		booking.Interval{Start: from, End: to})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(fiber.Map{
		"resource_id": resourceID,
		"window":      booking.Interval{Start: from, End: to},
		"free":        free,
	})
}

func (h *BookingHandler) GetReceipt(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	b, err := h.Engine.ListUserBookings(c.UserContext(), actor.UserID)
	if err != nil {
		return engineError(c, err)
	}
	for _, candidate := range b {
		if candidate.ID == bookingID {
			if candidate.ReceiptURL == nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receipt is not ready yet"})
			}
			return c.JSON(fiber.Map{"receipt_url": *candidate.ReceiptURL})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
}
