package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/config"
	"github.com/docuvault/docuvault/internal/users"
	"github.com/docuvault/docuvault/pkg/middleware"
)

// UserHandler exposes signup, login/logout and user lookup. Signup and
// login are public; everything else requires a verified token.
type UserHandler struct {
	cfg       *config.Config
	svc       *users.Service
	blacklist *auth.Blacklist
}

func NewUserHandler(cfg *config.Config, svc *users.Service, bl *auth.Blacklist) *UserHandler {
	return &UserHandler{cfg: cfg, svc: svc, blacklist: bl}
}

func (h *UserHandler) Register(public, api *gin.RouterGroup) {
	public.POST("/users", h.Signup)
	public.POST("/users/login", h.Login)
	api.POST("/users/logout", h.Logout)
	api.GET("/users/:id", h.Get)
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Signup registers a user and issues a token right away so clients can act
// without a separate login round-trip.
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	switch {
	case errors.Is(err, users.ErrRoleNotFound):
		respondError(c, http.StatusNotFound, "Role not found. Create first")
	case errors.Is(err, users.ErrUsernameTaken):
		respondError(c, http.StatusConflict, "User already exists")
	case err != nil:
		respondStoreError(c, err)
	default:
		token, terr := auth.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
		if terr != nil {
			respondStoreError(c, terr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User successfully created",
			"user":    u,
			"token":   token,
		})
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Authentication failed")
			return
		}
		respondStoreError(c, err)
		return
	}
	token, err := auth.GenerateAccessToken(h.cfg, u, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    u,
		"token":   token,
	})
}

// Logout blacklists the presented token for the remainder of its lifetime.
func (h *UserHandler) Logout(c *gin.Context) {
	raw := middleware.RawToken(c)
	if err := h.blacklist.Revoke(c.Request.Context(), raw, h.cfg.JWT.AccessTokenTTL); err != nil {
		respondStoreError(c, err)
		return
	}
	respondSuccess(c, "Logout successful", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if u == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}
