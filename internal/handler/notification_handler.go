package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allinone/manager/internal/middleware"
	"github.com/allinone/manager/internal/pkg/response"
	"github.com/allinone/manager/internal/repo"
	"github.com/allinone/manager/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type createNotificationRequest struct {
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Type     string          `json:"type"`
	Priority int             `json:"priority"`
	UserID   string          `json:"user_id"`
	Meta     json.RawMessage `json:"meta"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	filter := repo.NotificationFilter{
		UserID:     c.Query("userId"),
		UnreadOnly: c.Query("unreadOnly") == "true",
	}
	// `mine=true` scopes the listing to the authenticated subject; the
	// recipient tag is never taken from unverified headers.
	if c.Query("mine") == "true" {
		claims := middleware.GetClaims(c)
		if claims == nil {
			response.Error(c, http.StatusUnauthorized, "missing authorization")
			return
		}
		filter.UserID = strconv.FormatInt(claims.UserID, 10)
	}
	items, err := h.notifications.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := h.notifications.Create(c.Request.Context(), service.CreateNotificationParams{
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Priority: req.Priority,
		UserID:   req.UserID,
		Meta:     req.Meta,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, n)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	n, err := h.notifications.MarkRead(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notifications.MarkAllRead(c.Request.Context(), c.Query("userId"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
