package query

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"portal-backend/internal/shared/server/middleware"
	"portal-backend/internal/shared/server/respond"
)

// AskRequest is the payload for POST /query.
type AskRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Scope    string `json:"scope" validate:"omitempty,oneof=documents tickets all"`
}

// Validate checks structural constraints on the request.
func (r AskRequest) Validate() error {
	return validator.New().Struct(r)
}

// Handler wires HTTP handlers to the query service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the query route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/query", h.ask)
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	answer, err := h.Svc.Answer(c.Request.Context(), userID, req.Question, req.Scope)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnavailable):
			respond.Error(c, http.StatusBadGateway, "llm_unavailable", "unable to answer right now", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "query failed", nil)
		}
		return
	}
	respond.OK(c, gin.H{"answer": answer})
}
