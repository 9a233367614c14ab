package resumes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes selects the
// 10MB default.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/import", h.importResume)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes", h.list)
	rg.POST("/extract", h.preview)
}

func (h *Handler) importResume(c *gin.Context) {
	in, ok := h.readUpload(c)
	if !ok {
		return
	}

	res, err := h.Svc.Import(c.Request.Context(), in)
	if err != nil {
		writeImportError(c, err, "failed to import resume")
		return
	}

	c.Set(middleware.ResumeIDKey, res.ID)
	respond.Created(c, toResponse(res))
}

func (h *Handler) preview(c *gin.Context) {
	in, ok := h.readUpload(c)
	if !ok {
		return
	}

	an, err := h.Svc.Preview(c.Request.Context(), in)
	if err != nil {
		writeImportError(c, err, "failed to extract resume")
		return
	}

	respond.JSON(c, http.StatusOK, toPreview(an))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := strings.TrimSpace(c.Param("id"))
	c.Set(middleware.ResumeIDKey, id)

	res, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	resp := make([]ResumeListItem, 0, len(items))
	for _, res := range items {
		resp = append(resp, toListItem(res))
	}
	respond.JSON(c, http.StatusOK, resp)
}

// readUpload reads the multipart "file" field. It writes the error response
// itself and reports false when the request cannot proceed.
func (h *Handler) readUpload(c *gin.Context) (ImportInput, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", gin.H{"maxBytes": h.MaxUploadBytes})
			return ImportInput{}, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return ImportInput{}, false
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", gin.H{"maxBytes": h.MaxUploadBytes})
		return ImportInput{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return ImportInput{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return ImportInput{}, false
	}

	return ImportInput{
		UserID:   middleware.UserIDFromContext(c),
		FileName: fileHeader.Filename,
		MimeType: strings.TrimSpace(fileHeader.Header.Get("Content-Type")),
		Data:     data,
	}, true
}

func writeImportError(c *gin.Context, err error, fallback string) {
	var decodeErr *extract.DecodeError
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only PDF and DOCX files are supported", nil)
	case errors.As(err, &decodeErr):
		respond.Error(c, http.StatusUnprocessableEntity, "decode_failed", "document could not be read", gin.H{"mimeType": decodeErr.MimeType})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
