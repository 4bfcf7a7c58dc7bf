package files

import (
	"bytes"
	"errors"
	"time"

	"helperkit/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for files.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the file routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/files")
	group.Get("/", h.HandleList)
	group.Get("/audit/uploads", h.HandleUploadAudit)
	group.Post("/:name", h.HandleUpload)
	group.Get("/:name/url", h.HandlePresignedURL)
	group.Get("/:name", h.HandleDownload)
	group.Delete("/:name", h.HandleDelete)
}

// HandleUpload stores the request body as an object.
// @Summary Upload File
// @Description Store the raw request body under the given object name.
// @Tags files
// @Accept octet-stream
// @Produce json
// @Param name path string true "Object name"
// @Success 201 {object} files.FileInfo "Stored object"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /files/{name} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	body := c.Body()
	info, err := h.service.Upload(c.Context(), name, bytes.NewReader(body), int64(len(body)), c.Get(fiber.HeaderContentType))
	if err != nil {
		return h.fail(c, l, "upload failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleDownload streams an object back to the client.
// @Summary Download File
// @Description Stream the object's content.
// @Tags files
// @Produce octet-stream
// @Param name path string true "Object name"
// @Success 200 {string} binary "Object content"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /files/{name} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	// Stat first so missing objects produce a 404 instead of a broken stream.
	info, err := h.service.Stat(c.Context(), name)
	if err != nil {
		l.Warn("file not found", zap.String("name", name), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}

	obj, err := h.service.Download(c.Context(), name)
	if err != nil {
		return h.fail(c, l, "download failed", err)
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	return c.SendStream(obj, int(info.Size))
}

// HandleList returns metadata for stored objects.
// @Summary List Files
// @Description List objects, optionally filtered by prefix.
// @Tags files
// @Produce json
// @Param prefix query string false "Key prefix filter"
// @Success 200 {array} files.FileInfo "Objects"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /files [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	infos, err := h.service.List(c.Context(), c.Query("prefix"))
	if err != nil {
		return h.fail(c, l, "list failed", err)
	}
	return c.JSON(infos)
}

// HandlePresignedURL returns a time-limited download link.
// @Summary Presigned URL
// @Description Generate a time-limited download URL for an object.
// @Tags files
// @Produce json
// @Param name path string true "Object name"
// @Param expiry query int false "Validity in seconds (default 900)"
// @Success 200 {object} map[string]string "URL"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /files/{name}/url [get]
func (h *Handler) HandlePresignedURL(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	expiry := time.Duration(c.QueryInt("expiry", 900)) * time.Second
	u, err := h.service.PresignedURL(c.Context(), name, expiry)
	if err != nil {
		return h.fail(c, l, "presign failed", err)
	}
	return c.JSON(fiber.Map{"url": u})
}

// HandleUploadAudit returns the recent upload audit trail.
// @Summary Upload Audit
// @Description List recent uploads recorded in the audit log, newest first.
// @Tags files
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {array} files.UploadRecord "Audit rows"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /files/audit/uploads [get]
func (h *Handler) HandleUploadAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	recs, err := h.service.Uploads(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return h.fail(c, l, "audit lookup failed", err)
	}
	if recs == nil {
		recs = []UploadRecord{}
	}
	return c.JSON(recs)
}

// HandleDelete removes an object.
// @Summary Delete File
// @Description Delete an object from the bucket.
// @Tags files
// @Produce json
// @Param name path string true "Object name"
// @Success 204 {string} string "No Content"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /files/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Delete(c.Context(), name); err != nil {
		return h.fail(c, l, "delete failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	if errors.Is(err, ErrEmptyName) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
