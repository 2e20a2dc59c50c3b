package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mkamau589/cowork_hub/booking"
	"github.com/mkamau589/cowork_hub/database"
	"github.com/mkamau589/cowork_hub/models"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	Engine *booking.Engine
}

func NewPaymentHandler(engine *booking.Engine) *PaymentHandler {
	return &PaymentHandler{Engine: engine}
}

type PaymentWebhookRequest struct {
	BookingID     string  `json:"booking_id" validate:"required,uuid"`
	Provider      string  `json:"provider" validate:"required"`
	ProviderTxnID string  `json:"provider_txn_id" validate:"required"`
	Status        string  `json:"status" validate:"required,oneof=succeeded failed"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Currency      string  `json:"currency" validate:"omitempty,len=3"`
}

// Webhook is the payment provider's callback. A successful payment records
// the Payment row and confirms the pending booking; a duplicate delivery of
// the same provider transaction is acknowledged without re-confirming.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var req PaymentWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bookingID, _ := uuid.Parse(req.BookingID)

	var existing models.Payment
	if err := database.DB.First(&existing, "provider_txn_id = ?", req.ProviderTxnID).Error; err == nil {
		return c.JSON(fiber.Map{"message": "Payment already processed"})
	}

	if req.Status != "succeeded" {
		log.Printf("⚠️ Payment for booking %s failed at provider %s", req.BookingID, req.Provider)
		return c.JSON(fiber.Map{"message": "Payment failure recorded"})
	}

	payment := models.Payment{
		BookingID:     &bookingID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Provider:      req.Provider,
		ProviderTxnID: &req.ProviderTxnID,
		Status:        "succeeded",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(fiber.Map{"message": "Payment already processed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	confirmed, err := h.Engine.ConfirmPayment(c.UserContext(), bookingID)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Payment recorded, booking confirmed",
		"booking": confirmed,
	})
}
