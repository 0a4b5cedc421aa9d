package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentassist/dentsync/internal/handler"
	"github.com/dentassist/dentsync/internal/service/assistant"
)

type Handler struct {
	svc *assistant.Service
}

func NewHandler(svc *assistant.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ai := r.Group("/assistant")
	{
		ai.POST("/chat", h.Chat)
		ai.POST("/symptom-check", h.SymptomCheck)
	}
}

func (h *Handler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), req.Message)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"reply": reply}))
}

func (h *Handler) SymptomCheck(c *gin.Context) {
	var req struct {
		Symptoms string `json:"symptoms" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	assessment, err := h.svc.SymptomCheck(c.Request.Context(), req.Symptoms)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(assessment))
}
