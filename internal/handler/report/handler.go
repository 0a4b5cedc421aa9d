package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentassist/dentsync/internal/handler"
	"github.com/dentassist/dentsync/internal/report"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/outstanding", h.Outstanding)
		reports.GET("/outstanding/:patientID", h.PatientOutstanding)
		reports.GET("/balance", h.Balance)
		reports.GET("/monthly", h.Monthly)
		reports.GET("/procedures", h.Procedures)
	}
}

func (h *Handler) Outstanding(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"outstanding": h.svc.OutstandingBalance(),
	}))
}

func (h *Handler) PatientOutstanding(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patientID"))
		return
	}

	balance, err := h.svc.PatientOutstandingBalance(patientID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"patientId":   patientID,
		"outstanding": balance,
	}))
}

// Balance reports income, expenses and net over an inclusive date range.
// Defaults to the current month when no range is given.
func (h *Handler) Balance(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date"))
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date"))
			return
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.NetBalance(from, to)))
}

func (h *Handler) Monthly(c *gin.Context) {
	months := 6
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 36 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("months must be between 1 and 36"))
			return
		}
		months = n
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.MonthlyRollup(months)))
}

func (h *Handler) Procedures(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.ProcedureHistogram()))
}
