package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/auth"
	"github.com/ksaxena149/personal-relationship-manager/internal/notifier"
)

// ReminderHandler is the local control surface of the notification
// service: status, cached reminders, checker lifecycle, and the
// completion/deletion pass-throughs the host UI wires its actions to.
type ReminderHandler struct {
	service *notifier.Service
	tokens  *auth.StoreTokenSource
}

func NewReminderHandler(service *notifier.Service, tokens *auth.StoreTokenSource) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		tokens:  tokens,
	}
}

func (h *ReminderHandler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Running:       h.service.IsRunning(),
		ReminderCount: len(h.service.Reminders()),
		DueCount:      len(h.service.DueReminders()),
	}

	if last := h.service.LastFetchTime(); !last.IsZero() {
		resp.LastFetchedAt = &last
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReminderHandler) ListReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.toListResponse(h.service.Reminders()))
}

func (h *ReminderHandler) ListDueReminders(c *gin.Context) {
	c.JSON(http.StatusOK, h.toListResponse(h.service.DueReminders()))
}

func (h *ReminderHandler) StartChecker(c *gin.Context) {
	h.service.Start(c.Request.Context())

	slog.Info("reminder checker started via control API")
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) StopChecker(c *gin.Context) {
	h.service.Stop()

	slog.Info("reminder checker stopped via control API")
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) MarkAsRead(c *gin.Context) {
	id, ok := h.reminderID(c)
	if !ok {
		return
	}

	h.service.MarkAsRead(c.Request.Context(), id)

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) CompleteReminder(c *gin.Context) {
	id, ok := h.reminderID(c)
	if !ok {
		return
	}

	if !h.service.CompleteReminder(c.Request.Context(), id) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "remote_error",
			Message: "failed to complete reminder",
		})

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id, ok := h.reminderID(c)
	if !ok {
		return
	}

	if !h.service.DeleteReminder(c.Request.Context(), id) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "remote_error",
			Message: "failed to delete reminder",
		})

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) ResetAcknowledgements(c *gin.Context) {
	h.service.Reset(c.Request.Context())

	slog.Info("acknowledged reminders reset via control API")
	c.Status(http.StatusNoContent)
}

type saveTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *ReminderHandler) SaveToken(c *gin.Context) {
	var req saveTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})

		return
	}

	if err := h.tokens.Save(c.Request.Context(), req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to store credential",
		})

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) ClearToken(c *gin.Context) {
	if err := h.tokens.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "failed to clear credential",
		})

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) reminderID(c *gin.Context) (domain.ReminderID, bool) {
	id, err := domain.ReminderIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "reminder ID must be a positive integer",
		})

		return 0, false
	}

	return id, true
}

func (h *ReminderHandler) toListResponse(reminders []*domain.Reminder) RemindersResponse {
	responses := make([]ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		responses = append(responses, fromEntity(r, h.service.IsAcknowledged(r.ID())))
	}

	return RemindersResponse{
		Reminders: responses,
		Count:     len(responses),
	}
}

// UserGesture reports any control-API request as a user interaction so a
// previously blocked notification sound gets its one-shot retry.
func (h *ReminderHandler) UserGesture() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.service.NotifyUserGesture()
		c.Next()
	}
}

func (h *ReminderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	checker := router.Group("/checker")
	{
		checker.POST("/start", h.StartChecker)
		checker.POST("/stop", h.StopChecker)
	}

	reminders := router.Group("/reminders")
	{
		reminders.GET("", h.ListReminders)
		reminders.GET("/due", h.ListDueReminders)
		reminders.POST("/:id/read", h.MarkAsRead)
		reminders.POST("/:id/complete", h.CompleteReminder)
		reminders.DELETE("/:id", h.DeleteReminder)
	}

	router.POST("/acknowledgements/reset", h.ResetAcknowledgements)

	authGroup := router.Group("/auth")
	{
		authGroup.PUT("/token", h.SaveToken)
		authGroup.DELETE("/token", h.ClearToken)
	}
}
