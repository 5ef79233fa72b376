// Package api exposes the statement analyzer over HTTP.
package api

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/insightdelivered/statement-analyzer/internal/analyzer"
	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".pdf":  true,
}

// Handler holds the HTTP handlers for the analyzer API.
type Handler struct {
	Analyzer    *analyzer.Analyzer
	Log         *slog.Logger
	CORSOrigins []string
	MaxUploadMB int
}

// NewApp builds the fiber application with middleware and routes.
func (h *Handler) NewApp() *fiber.App {
	maxUpload := h.MaxUploadMB
	if maxUpload <= 0 {
		maxUpload = 25
	}
	app := fiber.New(fiber.Config{
		AppName:   "statement-analyzer",
		BodyLimit: maxUpload << 20,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(h.corsOrigins(), ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	h.RegisterRoutes(app)
	return app
}

func (h *Handler) corsOrigins() []string {
	if len(h.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return h.CORSOrigins
}

// RegisterRoutes sets up the API routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleAnalyze accepts a statement upload in multipart field "file",
// runs the analysis pipeline, and returns the response envelope. The
// HTTP status always mirrors the envelope's status_code.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return writeEnvelope(c, models.Response{
			StatusCode: models.StatusBadRequest,
			Message:    "No file uploaded. Use form field 'file'.",
			Result:     models.NewAnalysisResult(),
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !supportedExtensions[ext] {
		return writeEnvelope(c, models.Response{
			StatusCode: models.StatusBadRequest,
			Message:    "Unsupported file type",
			Result:     models.NewAnalysisResult(),
		})
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("statement-%s%s", uuid.NewString(), ext))
	if err := c.SaveFile(file, tmpPath); err != nil {
		h.Log.Error("failed to save upload", "error", err)
		return writeEnvelope(c, models.Response{
			StatusCode: models.StatusInternalServerError,
			Message:    "Failed to store uploaded file",
			Result:     models.NewAnalysisResult(),
			Errors:     []string{err.Error()},
		})
	}
	defer os.Remove(tmpPath)

	resp, pending := h.Analyzer.AnalyzeFile(tmpPath)
	h.Log.Info("analysis complete",
		"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
		"file", file.Filename,
		"status", resp.StatusCode,
		"transactions", len(resp.Result.Transactions),
		"skipped", resp.Result.SkippedRows,
		"pending_verifications", len(pending))
	return writeEnvelope(c, resp)
}

func writeEnvelope(c *fiber.Ctx, resp models.Response) error {
	return c.Status(resp.StatusCode).JSON(resp)
}
