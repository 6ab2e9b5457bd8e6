package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudstore/internal/middleware"
	"cloudstore/internal/pkg/response"
	"cloudstore/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Register a new user
// @Description Creates the user together with their root folder and logs them in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid request body"})
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.BadRequest(c, fields)
		return
	}

	_, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.BadRequest(c, gin.H{"email": "This email is already taken."})
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, gin.H{"token": token})
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400,403 {object} map[string]interface{}
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, gin.H{"message": "Invalid request body"})
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.BadRequest(c, fields)
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Fail(c, http.StatusForbidden, gin.H{"email": "The provided credentials do not match our records."})
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, gin.H{"token": token})
}

// Me godoc
// @Summary Current user info
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /user [get]
func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.OK(c, gin.H{"user": gin.H{
		"name":  user.Name,
		"email": user.Email,
	}})
}
