package handler

import (
	"go-pos-sync/internal/model"
	"go-pos-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var req model.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordPurchase(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded successfully", "data": result})
}

func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	result, err := h.service.DeletePurchase(c.Context(), c.Params("referenceNo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase deleted successfully", "data": result})
}

func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	purchase, err := h.service.GetPurchase(c.Params("referenceNo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	purchases, total, err := h.service.ListPurchases(limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"data": purchases, "total": total})
}
