package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/application"
	"github.com/javnievic/comparte-tu-tiempo/pkg/response"
	"github.com/javnievic/comparte-tu-tiempo/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phone"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh" binding:"required"`
}

type updateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,phone"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// Register POST /api/users/
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusBadRequest, "registration failed", map[string]string{"email": "ya existe un usuario con este email"})
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, userView(u), "user registered", nil)
}

// Login POST /api/login/
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
		"user":    userView(u),
	}, "login successful", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/refresh/
func (h *UserHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	}, "token refreshed", gin.H{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// List GET /api/users/
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list users", nil)
		return
	}
	response.Success(c, http.StatusOK, userViews(users), "users", nil)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "user", nil)
}

// Update PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), c.Param("id"), application.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		h.writeUserError(c, err, "No puedes modificar un perfil que no es tuyo.")
		return
	}
	response.Success(c, http.StatusOK, userView(u), "profile updated", nil)
}

// Delete DELETE /api/users/:id
// Soft delete: deactivates the account and overwrites the display name.
// Responds 200 (not 204) and is idempotent.
func (h *UserHandler) Delete(c *gin.Context) {
	u, err := h.Svc.Deactivate(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.writeUserError(c, err, "No puedes eliminar un perfil que no es tuyo.")
		return
	}
	response.Success(c, http.StatusOK, userView(u), "user deactivated", nil)
}

func (h *UserHandler) writeUserError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, forbiddenMsg, nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		h.Logger.WithError(err).Error("user operation failed")
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}
