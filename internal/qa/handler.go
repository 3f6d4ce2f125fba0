package qa

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
)

// Handler exposes the ask and history routes.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches qa routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.ask)
	rg.GET("/qa-history/:documentId", h.history)
}

type askRequest struct {
	DocumentID string `json:"documentId"`
	Question   string `json:"question"`
}

type historyEntry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId and question are required", nil)
		return
	}

	entry, err := h.Svc.Ask(c.Request.Context(), userID, req.DocumentID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "documentId and question are required", nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to answer question", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"answer": entry.Answer})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	entries, err := h.Svc.History(c.Request.Context(), userID, c.Param("documentId"))
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "you do not own this document", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch history", nil)
		}
		return
	}

	out := make([]historyEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntry{
			ID:        entry.ID,
			Question:  entry.Question,
			Answer:    entry.Answer,
			CreatedAt: entry.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, out)
}
