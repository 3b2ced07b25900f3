package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/docuvault/docuvault/internal/document"
	"github.com/docuvault/docuvault/internal/document/service"
	"github.com/docuvault/docuvault/pkg/metrics"
	"github.com/docuvault/docuvault/pkg/middleware"
)

// DocumentHandler exposes the document CRUD and search endpoints.
type DocumentHandler struct {
	svc *service.Service
}

func NewDocumentHandler(svc *service.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Register wires the document routes. All routes sit behind the auth
// middleware; creation additionally passes the title-based role gate.
func (h *DocumentHandler) Register(api *gin.RouterGroup, roleAccess gin.HandlerFunc) {
	api.POST("/documents", roleAccess, h.Create)
	api.GET("/documents", h.List)
	api.GET("/documents/:id", h.Get)
	api.PUT("/documents/:id", h.Update)
	api.DELETE("/documents/:id", h.Delete)

	// by-role and by-user lookups; :limit is optional
	api.GET("/documents/role/:role", h.GetByRole)
	api.GET("/documents/role/:role/:limit", h.GetByRole)
	api.GET("/roles/:role/documents", h.GetByRole)
	api.GET("/roles/:role/documents/:limit", h.GetByRole)
	api.GET("/user/:userId/documents", h.GetByUser)
	api.GET("/user/:userId/documents/:limit", h.GetByUser)
}

type createDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
	Role    string `json:"role"`
}

// Create checks role, then user, then title uniqueness, in that order,
// before persisting.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
		Role:    req.Role,
	})
	switch {
	case errors.Is(err, document.ErrRoleNotFound):
		respondError(c, http.StatusNotFound, "Role not found. Create first")
	case errors.Is(err, document.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, document.ErrDuplicateTitle):
		respondError(c, http.StatusConflict, "Document already exists")
	case err != nil:
		respondStoreError(c, err)
	default:
		metrics.DocumentsCreated.Inc()
		respondSuccess(c, "Document successfully created", doc)
	}
}

// List searches documents by title/role/createdAt with limit/after
// pagination. An empty result is a 200 with an empty array.
func (h *DocumentHandler) List(c *gin.Context) {
	params := document.SearchParams{
		Title:     c.Query("title"),
		Role:      c.Query("role"),
		CreatedAt: c.Query("createdAt"),
	}
	page := document.ParsePagination(c.Query("limit"), c.Query("after"))
	docs, err := h.svc.List(c.Request.Context(), params, page)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Document not found")
			return
		}
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) GetByRole(c *gin.Context) {
	limit := document.ParseLimit(c.Param("limit"))
	docs, err := h.svc.GetByRole(c.Request.Context(), c.Param("role"), limit)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Role has no document")
			return
		}
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *DocumentHandler) GetByUser(c *gin.Context) {
	limit := document.ParseLimit(c.Param("limit"))
	docs, err := h.svc.GetByUser(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User has no document")
			return
		}
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Update applies a partial field patch. Only the owner may update; the
// existence check runs first so a missing id reports 404 even to a caller
// who would have been denied.
func (h *DocumentHandler) Update(c *gin.Context) {
	pr, ok := middleware.Principal(c)
	if !ok {
		respondError(c, http.StatusForbidden, "No token provided")
		return
	}
	var patch document.Patch
	if err := c.ShouldBindBodyWith(&patch, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, "Document update failed")
		return
	}
	err := h.svc.Update(c.Request.Context(), pr, c.Param("id"), patch)
	switch {
	case errors.Is(err, document.ErrNotFound):
		respondError(c, http.StatusNotFound, "Document not found")
	case errors.Is(err, document.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "Access Denied")
	case err != nil:
		respondStoreError(c, err)
	default:
		metrics.DocumentsUpdated.Inc()
		respondSuccess(c, "Document successfully updated", nil)
	}
}

// Delete removes a document permanently, owner only.
func (h *DocumentHandler) Delete(c *gin.Context) {
	pr, ok := middleware.Principal(c)
	if !ok {
		respondError(c, http.StatusForbidden, "No token provided")
		return
	}
	err := h.svc.Delete(c.Request.Context(), pr, c.Param("id"))
	switch {
	case errors.Is(err, document.ErrNotFound):
		respondError(c, http.StatusNotFound, "Document not found")
	case errors.Is(err, document.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "Access Denied")
	case err != nil:
		respondStoreError(c, err)
	default:
		metrics.DocumentsDeleted.Inc()
		respondSuccess(c, "Document successfully deleted", nil)
	}
}
