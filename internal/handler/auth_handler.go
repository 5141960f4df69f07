package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Varshith2802/ip-reputation-checker/internal/middleware"
	"github.com/Varshith2802/ip-reputation-checker/internal/models"
	appErrors "github.com/Varshith2802/ip-reputation-checker/pkg/errors"
	"github.com/Varshith2802/ip-reputation-checker/pkg/response"
)

// AuthService defines the subset of auth operations the handler needs.
type AuthService interface {
	Register(ctx context.Context, req models.CredentialsRequest) error
	Login(ctx context.Context, req models.CredentialsRequest) (*models.TokenResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account from a username/password pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.CredentialsRequest true "Registration payload"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, models.MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by username and password, returns a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.CredentialsRequest true "Login payload"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// VerifyToken godoc
// @Summary Verify the current session
// @Description Confirms the bearer token is valid and returns its subject
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.VerifyResponse
// @Failure 401 {object} response.Envelope
// @Router /verify-token [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	username := middleware.CurrentUser(c)
	if username == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	response.JSON(c, http.StatusOK, models.VerifyResponse{Username: username, Message: "Token is valid"})
}

// Welcome godoc
// @Summary Service banner
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router / [get]
func (h *AuthHandler) Welcome(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.MessageResponse{Message: "Welcome to the Authentication Service"})
}
