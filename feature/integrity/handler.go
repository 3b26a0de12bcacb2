package integrity

import (
	"errors"

	"github.com/southpawriter02/rune-rust-sub041/core/logger"
	"github.com/southpawriter02/rune-rust-sub041/core/reconcile"
	"github.com/southpawriter02/rune-rust-sub041/feature/integrity/checks"
	"github.com/southpawriter02/rune-rust-sub041/feature/registry"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/catalogs", h.HandleCatalogCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
	group.Get("/reconcile", h.HandleReconcile)
	group.Get("/reconcile/:name", h.HandleReconcileDocument)
}

// HandleIntegrityCheck runs every check and returns a combined report.
// Catalog failures are reported in the body; the status is always 200.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	catalogs := h.service.CheckCatalogs()
	report := fiber.Map{
		"status":   statusOf(checks.Healthy(catalogs)),
		"catalogs": catalogs,
	}

	if missing, err := h.service.CheckDocuments(ctx); err != nil {
		report["storage"] = failure(err)
	} else {
		report["storage"] = fiber.Map{"status": statusOf(len(missing) == 0), "missing": missing}
	}

	if schema, err := h.service.CheckSchema(ctx); err != nil {
		report["database"] = failure(err)
	} else {
		report["database"] = schema
	}

	return c.JSON(report)
}

// HandleCatalogCheck loads every catalog. It answers 500 when any family fails,
// so it can serve as a readiness probe.
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports := h.service.CheckCatalogs()
	if !checks.Healthy(reports) {
		for _, r := range reports {
			if !r.OK() {
				l.Warn("Catalog failed to load", zap.String("family", r.Family), zap.String("error", r.Error))
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "catalogs": reports})
	}
	return c.JSON(fiber.Map{"status": "ok", "catalogs": reports})
}

// HandleStorageCheck checks that every rules document exists in the bucket.
// With ?fix=true the missing documents are uploaded from the embedded defaults.
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckDocuments(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing rules documents detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Uploading missing rules documents")
			if err := h.service.FixDocuments(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to upload documents",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleDatabaseCheck inspects the rules document table.
// With ?fix=true the table is migrated and the missing documents are stored.
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Database check failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched && fix && len(report.Errors) == 0 {
		missing := report.MissingDocuments
		if len(report.MissingColumns) > 0 {
			// The table could not be read, so every document is treated as missing.
			missing = registry.Resources
		}
		l.Info("Fixing rules document table", zap.Strings("missing", missing))
		if err := h.service.FixSchema(c.Context(), missing); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix rules document table",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "fixed",
			"fixed":  missing,
		})
	}

	return c.JSON(report)
}

// HandleReconcile reports drift between the embedded defaults and the
// backends. ?restore=true and ?sync=true plan writes; ?confirm=true runs them.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := reconcile.ReconcileOptions{
		DoRestore: c.Query("restore") == "true",
		DoSync:    c.Query("sync") == "true",
		Confirmed: c.Query("confirm") == "true",
	}

	plan, executed, err := h.service.Reconcile(c.Context(), opts)
	if err != nil {
		l.Error("Reconcile failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if executed > 0 {
		l.Info("Reconcile applied", zap.Int("executed", executed))
	}

	return c.JSON(fiber.Map{
		"results":  plan.Results,
		"actions":  plan.Actions,
		"summary":  plan.Summary,
		"executed": executed,
	})
}

// HandleReconcileDocument reconciles one document.
func (h *Handler) HandleReconcileDocument(c *fiber.Ctx) error {
	name := c.Params("name")
	result, err := h.service.ReconcileDocument(c.Context(), name)
	if errors.Is(err, reconcile.ErrUnknownDocument) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

func statusOf(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func failure(err error) fiber.Map {
	if errors.Is(err, ErrNotConfigured) {
		return fiber.Map{"status": "skipped"}
	}
	return fiber.Map{"status": "error", "error": err.Error()}
}

func statusFor(err error) int {
	if errors.Is(err, ErrNotConfigured) {
		return fiber.StatusNotImplemented
	}
	return fiber.StatusInternalServerError
}
