package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuvault/docuvault/internal/models"
	"github.com/docuvault/docuvault/internal/roles"
)

// RoleHandler exposes role management. Creation is reserved for callers
// whose own role resolves to the privileged role name (RoleAuth gate).
type RoleHandler struct {
	repo roles.Repository
}

func NewRoleHandler(repo roles.Repository) *RoleHandler {
	return &RoleHandler{repo: repo}
}

func (h *RoleHandler) Register(api *gin.RouterGroup, roleAuth gin.HandlerFunc) {
	api.POST("/roles", roleAuth, h.Create)
	api.GET("/roles", h.List)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		respondError(c, http.StatusBadRequest, "Role title is required")
		return
	}
	existing, err := h.repo.GetByTitle(c.Request.Context(), req.Title)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if existing != nil {
		respondError(c, http.StatusConflict, "Role already exists")
		return
	}
	role := &models.Role{Title: req.Title}
	if _, err := h.repo.Create(c.Request.Context(), role); err != nil {
		respondStoreError(c, err)
		return
	}
	respondSuccess(c, "Role successfully created", role)
}

func (h *RoleHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
