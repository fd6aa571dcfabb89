package tickets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"portal-backend/internal/shared/server/middleware"
	"portal-backend/internal/shared/server/respond"
)

// CreateTicketRequest is the payload for POST /tickets.
type CreateTicketRequest struct {
	Description  string `json:"description" validate:"required,min=1"`
	TicketType   string `json:"ticketType" validate:"required,oneof=self other"`
	AffectedUser string `json:"affectedUser" validate:"omitempty,min=1"`
}

// Validate checks structural constraints on the request.
func (r CreateTicketRequest) Validate() error {
	return validator.New().Struct(r)
}

// TransitionRequest carries the optional reason for lifecycle actions.
type TransitionRequest struct {
	Reason string `json:"reason"`
}

// TicketResponse is the API shape of a ticket.
type TicketResponse struct {
	ID               string `json:"id"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	TicketType       string `json:"ticketType"`
	AffectedUser     string `json:"affectedUser,omitempty"`
	Status           string `json:"status"`
	AISummary        string `json:"aiSummary,omitempty"`
	AISuggestion     string `json:"aiSuggestion,omitempty"`
	EscalationReason string `json:"escalationReason,omitempty"`
	ReopenReason     string `json:"reopenReason,omitempty"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

func toResponse(t Ticket) TicketResponse {
	return TicketResponse{
		ID:               t.ID,
		Description:      t.Description,
		Category:         t.Category,
		TicketType:       string(t.Type),
		AffectedUser:     t.AffectedUser,
		Status:           string(t.Status),
		AISummary:        t.AISummary,
		AISuggestion:     t.AISuggestion,
		EscalationReason: t.EscalationReason,
		ReopenReason:     t.ReopenReason,
		CreatedAt:        t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Handler wires HTTP handlers to the tickets service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ticket routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tickets", h.createTicket)
	rg.GET("/tickets", h.listTickets)
	rg.GET("/tickets/:id", h.getTicket)
	rg.POST("/tickets/:id/resolve", h.transition(ActionResolve))
	rg.POST("/tickets/:id/reopen", h.transition(ActionReopen))
	rg.POST("/tickets/:id/escalate", h.transition(ActionEscalate))
}

func (h *Handler) createTicket(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), userID, req.Description, Type(req.TicketType), req.AffectedUser)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(t))
}

func (h *Handler) listTickets(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	ts, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]TicketResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toResponse(t))
	}
	respond.OK(c, gin.H{"tickets": out})
}

func (h *Handler) getTicket(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	respond.OK(c, toResponse(t))
}

func (h *Handler) transition(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)

		var req TransitionRequest
		if c.Request.Body != nil && c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
				return
			}
		}

		t, err := h.Svc.Transition(c.Request.Context(), c.Param("id"), userID, action, req.Reason)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		respond.OK(c, gin.H{
			"message": "Ticket " + string(t.Status),
			"ticket":  toResponse(t),
		})
	}
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrAuthorization):
		respond.Error(c, http.StatusForbidden, "authorization_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "ticket not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "ticket operation failed", nil)
	}
}
