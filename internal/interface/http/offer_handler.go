package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/application"
	"github.com/javnievic/comparte-tu-tiempo/internal/domain/repository"
	"github.com/javnievic/comparte-tu-tiempo/pkg/response"
	"github.com/javnievic/comparte-tu-tiempo/pkg/validation"
)

type OfferHandler struct {
	Svc    *application.OfferService
	Logger *logrus.Logger
}

func NewOfferHandler(svc *application.OfferService, logger *logrus.Logger) *OfferHandler {
	return &OfferHandler{Svc: svc, Logger: logger}
}

type offerRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"required,max=500"`
	Duration    int64  `json:"duration" binding:"required"` // minutes
	IsOnline    bool   `json:"is_online"`
	Location    string `json:"location" binding:"max=100"`
}

type offerUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Duration    *int64  `json:"duration"` // minutes
	IsOnline    *bool   `json:"is_online"`
	IsActive    *bool   `json:"is_active"`
	Location    *string `json:"location" binding:"omitempty,max=100"`
}

// parseOfferFilter reads the listing parameters. Every filter is optional
// and malformed numeric or date values are dropped instead of failing the
// request: a public listing degrades to "no filter" on that dimension.
func parseOfferFilter(c *gin.Context) repository.OfferFilter {
	f := repository.OfferFilter{
		UserID:   c.Query("user"),
		Location: c.Query("location"),
		Query:    c.Query("q"),
	}
	if v, ok := c.GetQuery("is_online"); ok {
		b := strings.EqualFold(v, "true")
		f.IsOnline = &b
	}
	if v, ok := c.GetQuery("is_active"); ok {
		b := strings.EqualFold(v, "true")
		f.IsActive = &b
	}
	if v, ok := c.GetQuery("min_duration"); ok {
		if hours, err := strconv.ParseFloat(v, 64); err == nil && hours > 0 {
			f.MinDuration = time.Duration(hours * float64(time.Hour))
		}
	}
	if v, ok := c.GetQuery("max_duration"); ok {
		if hours, err := strconv.ParseFloat(v, 64); err == nil && hours > 0 {
			f.MaxDuration = time.Duration(hours * float64(time.Hour))
		}
	}
	if v, ok := c.GetQuery("from_date"); ok {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.FromDate = t
		}
	}
	if v, ok := c.GetQuery("to_date"); ok {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.ToDate = t
		}
	}
	return f
}

// List GET /api/offers/ (public)
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.Svc.List(c.Request.Context(), parseOfferFilter(c))
	if err != nil {
		h.Logger.WithError(err).Error("list offers failed")
		response.Error[any](c, http.StatusInternalServerError, "could not list offers", nil)
		return
	}
	response.Success(c, http.StatusOK, offerViews(offers), "offers", nil)
}

// Get GET /api/offers/:id (public)
func (h *OfferHandler) Get(c *gin.Context) {
	o, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "offer not found", nil)
		return
	}
	response.Success(c, http.StatusOK, offerView(o), "offer", nil)
}

// Create POST /api/offers/
// The authenticated caller becomes the owner; any owner field in the
// payload is ignored.
func (h *OfferHandler) Create(c *gin.Context) {
	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.OfferInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    time.Duration(req.Duration) * time.Minute,
		IsOnline:    req.IsOnline,
		Location:    req.Location,
	})
	if err != nil {
		h.writeOfferError(c, err, "")
		return
	}
	response.Success(c, http.StatusCreated, offerView(o), "offer created", nil)
}

// Update PATCH /api/offers/:id (owner only)
func (h *OfferHandler) Update(c *gin.Context) {
	var req offerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.OfferUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		IsOnline:    req.IsOnline,
		IsActive:    req.IsActive,
		Location:    req.Location,
	}
	if req.Duration != nil {
		d := time.Duration(*req.Duration) * time.Minute
		in.Duration = &d
	}
	o, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), in)
	if err != nil {
		h.writeOfferError(c, err, "No puedes modificar una oferta que no es tuya.")
		return
	}
	response.Success(c, http.StatusOK, offerView(o), "offer updated", nil)
}

// Delete DELETE /api/offers/:id (owner only)
func (h *OfferHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		h.writeOfferError(c, err, "No puedes eliminar una oferta que no es tuya.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OfferHandler) writeOfferError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, application.ErrDurationOutOfRange):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"duration": err.Error()})
	case errors.Is(err, application.ErrOfferNotFound):
		response.Error[any](c, http.StatusNotFound, "offer not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, forbiddenMsg, nil)
	default:
		h.Logger.WithError(err).Error("offer operation failed")
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}
