// Package api exposes the processing pipeline and the read-side
// reporting queries over HTTP.
package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gitlab.com/yelinaung/expense-service/internal/logger"
	"gitlab.com/yelinaung/expense-service/internal/models"
	"gitlab.com/yelinaung/expense-service/internal/pipeline"
)

// ServiceName identifies this service in health responses.
const ServiceName = "expense-service"

// MessageProcessor runs one message through the pipeline.
// Satisfied by *pipeline.Processor.
type MessageProcessor interface {
	Process(ctx context.Context, telegramID, message string) pipeline.Outcome
}

// ExpenseReader serves the read-side queries. Satisfied by
// *pipeline.Store.
type ExpenseReader interface {
	ListRecent(ctx context.Context, telegramID string, limit int) []models.Expense
	Stats(ctx context.Context, telegramID string) *models.ExpenseStats
}

// Server is the HTTP surface of the service.
type Server struct {
	app       *fiber.App
	processor MessageProcessor
	reader    ExpenseReader
}

// NewServer creates the fiber application and registers all routes.
func NewServer(processor MessageProcessor, reader ExpenseReader) *Server {
	s := &Server{
		processor: processor,
		reader:    reader,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               ServiceName,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Programming errors in a handler must not take the process down
	// with it; they terminate request handling instead.
	s.app.Use(recover.New())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Post("/process-expense", s.handleProcessExpense)
	s.app.Get("/categories", s.handleCategories)
	s.app.Get("/expenses/:telegram_id", s.handleExpenses)
	s.app.Get("/stats/:telegram_id", s.handleStats)
	s.app.Get("/chart/:telegram_id", s.handleChart)
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	logger.Log.Info().Str("addr", addr).Msg("HTTP API listening")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying fiber application. Used for testing.
func (s *Server) App() *fiber.App {
	return s.app
}
