package clinic

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentassist/dentsync/internal/handler"
	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/service/clinic"
)

type Handler struct {
	svc *clinic.Service
}

func NewHandler(svc *clinic.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	settings := r.Group("/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)
	}
}

type settingsResponse struct {
	ClinicName          string `json:"clinicName"`
	ClinicContactNumber string `json:"clinicContactNumber"`
}

func (h *Handler) GetSettings(c *gin.Context) {
	state := h.svc.State()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(settingsResponse{
		ClinicName:          state.ClinicName,
		ClinicContactNumber: state.ClinicContactNumber,
	}))
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req model.UpdateClinicSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	state := h.svc.UpdateSettings(&req)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(settingsResponse{
		ClinicName:          state.ClinicName,
		ClinicContactNumber: state.ClinicContactNumber,
	}))
}
