package handler

import (
	"go-pos-sync/internal/model"
	"go-pos-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var req model.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Cashier == "" {
		req.Cashier = getUserName(c)
	}

	result, err := h.service.RecordSale(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale created successfully", "data": result})
}

func (h *SalesHandler) DeleteSale(c *fiber.Ctx) error {
	invoiceNo := c.Params("invoiceNo")

	result, err := h.service.DeleteSale(c.Context(), invoiceNo)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale deleted successfully", "data": result})
}

func (h *SalesHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.service.GetSale(c.Params("invoiceNo"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	sales, total, err := h.service.ListSales(limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"data": sales, "total": total})
}
