package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gitlab.com/yelinaung/expense-service/internal/models"
	"gitlab.com/yelinaung/expense-service/internal/repository"
)

type processRequest struct {
	TelegramID string `json:"telegram_id"`
	Message    string `json:"message"`
}

type processResponse struct {
	Success     bool     `json:"success"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Message     string   `json:"message"`
}

type expenseJSON struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	AddedAt     time.Time `json:"added_at"`
}

type categoryStatJSON struct {
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type statsResponse struct {
	TotalExpenses int64                       `json:"total_expenses"`
	TotalAmount   float64                     `json:"total_amount"`
	Categories    map[string]categoryStatJSON `json:"categories"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleProcessExpense(c *fiber.Ctx) error {
	var req processRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TelegramID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "telegram_id is required")
	}
	if req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "message is required")
	}

	outcome := s.processor.Process(c.UserContext(), req.TelegramID, req.Message)

	resp := processResponse{
		Success: outcome.Recorded(),
		Message: outcome.Message(),
	}
	if outcome.Recorded() {
		amount := outcome.Amount.InexactFloat64()
		resp.Category = &outcome.Category
		resp.Description = &outcome.Description
		resp.Amount = &amount
	}

	return c.JSON(resp)
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": models.Categories,
	})
}

func (s *Server) handleExpenses(c *fiber.Ctx) error {
	telegramID := c.Params("telegram_id")
	limit := c.QueryInt("limit", repository.DefaultListLimit)

	expenses := s.reader.ListRecent(c.UserContext(), telegramID, limit)

	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expenseJSON{
			Description: e.Description,
			Amount:      e.Amount.InexactFloat64(),
			Category:    e.Category,
			AddedAt:     e.AddedAt,
		})
	}

	return c.JSON(fiber.Map{
		"expenses": out,
		"count":    len(out),
	})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	telegramID := c.Params("telegram_id")

	stats := s.reader.Stats(c.UserContext(), telegramID)

	resp := statsResponse{
		TotalExpenses: stats.TotalCount,
		TotalAmount:   stats.TotalAmount.InexactFloat64(),
		Categories:    make(map[string]categoryStatJSON, len(stats.Categories)),
	}
	for _, cs := range stats.Categories {
		resp.Categories[cs.Category] = categoryStatJSON{
			Count:       cs.Count,
			TotalAmount: cs.TotalAmount.InexactFloat64(),
		}
	}

	return c.JSON(resp)
}

func (s *Server) handleChart(c *fiber.Ctx) error {
	telegramID := c.Params("telegram_id")

	stats := s.reader.Stats(c.UserContext(), telegramID)
	if stats.TotalCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no expenses to chart")
	}

	png, err := renderCategoryChart(stats)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
