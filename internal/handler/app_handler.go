package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allinone/manager/internal/pkg/response"
	"github.com/allinone/manager/internal/service"
)

type AppHandler struct {
	apps *service.AppService
}

func NewAppHandler(apps *service.AppService) *AppHandler {
	return &AppHandler{apps: apps}
}

type createAppRequest struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	OwnerID     *int64          `json:"owner_id"`
	Meta        json.RawMessage `json:"meta"`
}

type updateAppRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Meta        json.RawMessage `json:"meta"`
}

func (h *AppHandler) List(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, apps)
}

func (h *AppHandler) Create(c *gin.Context) {
	var req createAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	app, err := h.apps.Create(c.Request.Context(), service.CreateAppParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Meta:        req.Meta,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, app)
}

func (h *AppHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	app, err := h.apps.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, app)
}

func (h *AppHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	app, err := h.apps.Update(c.Request.Context(), id, service.AppUpdate{
		Name:        req.Name,
		Description: req.Description,
		Meta:        req.Meta,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, app)
}

func (h *AppHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.apps.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
