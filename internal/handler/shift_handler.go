package handler

import (
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShiftHandler struct {
	shiftService service.ShiftService
}

func NewShiftHandler(shiftService service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

type OpenShiftRequest struct {
	StartCash decimal.Decimal `json:"start_cash"`
}

type CloseShiftRequest struct {
	EndCash decimal.Decimal `json:"end_cash"`
}

// OpenShift starts a work session for the caller
// POST /api/shifts
func (h *ShiftHandler) OpenShift(c *fiber.Ctx) error {
	var req OpenShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	shift, err := h.shiftService.OpenShift(userID, req.StartCash)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(shift)
}

// GetActiveShift returns the caller's open shift, or null
// GET /api/shifts/active
func (h *ShiftHandler) GetActiveShift(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	shift, err := h.shiftService.GetActiveShift(userID)
	if err != nil {
		return fail(c, err)
	}
	if shift == nil {
		return c.JSON(nil)
	}
	return c.JSON(shift)
}

// GetShifts lists the caller's shifts, newest first
// GET /api/shifts
func (h *ShiftHandler) GetShifts(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	shifts, err := h.shiftService.GetUserShifts(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shifts)
}

// CloseShift ends a shift; only the owner can close it, and only once
// POST /api/shifts/:id/close
func (h *ShiftHandler) CloseShift(c *fiber.Ctx) error {
	shiftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	var req CloseShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	shift, err := h.shiftService.CloseShift(shiftID, req.EndCash, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shift)
}
