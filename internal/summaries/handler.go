package summaries

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
)

// Handler exposes the summarize and summary-retrieval routes.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches summary routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
	rg.GET("/summary/:documentId", h.get)
}

type summarizeRequest struct {
	DocumentID string `json:"documentId"`
}

func (h *Handler) summarize(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}

	summary, err := h.Svc.Summarize(c.Request.Context(), userID, req.DocumentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to summarize document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"summary": summary.Content})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	summary, err := h.Svc.Get(c.Request.Context(), userID, c.Param("documentId"))
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this document", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no summary exists for this document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch summary", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"summary":   summary.Content,
		"createdAt": summary.CreatedAt,
	})
}
