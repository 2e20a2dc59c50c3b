package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	config "github.com/mkamau589/cowork_hub/configs"
	"github.com/mkamau589/cowork_hub/database"
	"github.com/mkamau589/cowork_hub/models"
)

func ListResources(c *fiber.Ctx) error {
	query := database.DB.Where("is_active = ?", true)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var resources []models.Resource
	if err := query.Order("name asc").Find(&resources).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(resources)
}

func GetResource(c *fiber.Ctx) error {
	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", c.Params("resourceId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}
	return c.JSON(resource)
}

type CreateResourceRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Type        string  `json:"type" validate:"required,oneof=desk meeting_room phone_booth event_space"`
	Capacity    int     `json:"capacity" validate:"required,min=1"`
	HourlyRate  float64 `json:"hourly_rate" validate:"gte=0"`
	Description *string `json:"description,omitempty"`
	Floor       *string `json:"floor,omitempty"`
}

func CreateResource(c *fiber.Ctx) error {
	var req CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource := models.Resource{
		Name:        req.Name,
		Type:        models.ResourceType(req.Type),
		Capacity:    req.Capacity,
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
		Floor:       req.Floor,
		IsActive:    true,
	}
	if err := database.DB.Create(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create resource"})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

type UpdateResourceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,min=1"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
	Floor       *string  `json:"floor,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func UpdateResource(c *fiber.Ctx) error {
	var req UpdateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", c.Params("resourceId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Capacity != nil {
		resource.Capacity = *req.Capacity
	}
	if req.HourlyRate != nil {
		resource.HourlyRate = *req.HourlyRate
	}
	if req.Description != nil {
		resource.Description = req.Description
	}
	if req.Floor != nil {
		resource.Floor = req.Floor
	}
	if req.IsActive != nil {
		resource.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update resource"})
	}
	return c.JSON(resource)
}

// DeactivateResource soft-deactivates; existing bookings keep their history
// and the resource can be reactivated later via update.
func DeactivateResource(c *fiber.Ctx) error {
	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", c.Params("resourceId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	resource.IsActive = false
	if err := database.DB.Save(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate resource"})
	}
	return c.JSON(fiber.Map{"message": "Resource deactivated", "resource": resource})
}

func UploadResourcePhoto(c *fiber.Ctx) error {
	var resource models.Resource
	if err := database.DB.First(&resource, "id = ?", c.Params("resourceId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Photo file is required."})
	}

	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload service unavailable."})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   "cowork_hub_resources",
		PublicID: fmt.Sprintf("resource_%s", resource.ID),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload photo."})
	}

	resource.PhotoURL = &uploadResult.SecureURL
	if err := database.DB.Save(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo URL."})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}
