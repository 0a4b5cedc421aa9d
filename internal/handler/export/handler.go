package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentassist/dentsync/internal/export"
	"github.com/dentassist/dentsync/internal/handler"
	"github.com/dentassist/dentsync/internal/service/exporter"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *exporter.Service
}

func NewHandler(svc *exporter.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	exports := r.Group("/exports")
	{
		exports.GET("/patients/:id/pdf", h.PatientPDF)
		exports.GET("/patients/:id/text", h.PatientText)
		exports.GET("/patients/:id/whatsapp", h.PatientWhatsAppLink)
		exports.POST("/patients/:id/email", h.EmailPatientReport)
		exports.GET("/transactions.xlsx", h.TransactionsXLSX)
		exports.GET("/billing.xlsx", h.BillingXLSX)
		exports.GET("/finance.pdf", h.FinancePDF)
		exports.GET("/finance.text", h.FinanceText)
	}
}

// sections reads the section toggles from the query string. A request with
// no toggles selects everything.
func sections(c *gin.Context) (export.Sections, error) {
	var sec export.Sections
	if err := c.ShouldBindQuery(&sec); err != nil {
		return sec, err
	}
	if sec == (export.Sections{}) {
		return export.AllSections(), nil
	}
	return sec, nil
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) PatientPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sec, err := sections(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	pdf, err := h.svc.PatientPDF(id, sec)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="patient-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) PatientText(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sec, err := sections(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	text, err := h.svc.PatientText(id, sec)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"text": text}))
}

func (h *Handler) PatientWhatsAppLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sec, err := sections(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	link, err := h.svc.PatientWhatsAppLink(id, c.Query("phone"), sec)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"link": link}))
}

func (h *Handler) EmailPatientReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		To       string           `json:"to" binding:"required,email"`
		Sections *export.Sections `json:"sections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sec := export.AllSections()
	if req.Sections != nil {
		sec = *req.Sections
	}

	if err := h.svc.EmailPatientReport(c.Request.Context(), id, req.To, sec); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("report sent"))
}

func (h *Handler) TransactionsXLSX(c *gin.Context) {
	data, err := h.svc.TransactionsXLSX()
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) BillingXLSX(c *gin.Context) {
	data, err := h.svc.BillingXLSX()
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="billing.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// window reads the from/to query params, defaulting to the current calendar
// month.
func window(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date"))
			return from, to, false
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date"))
			return from, to, false
		}
	}
	return from, to, true
}

func (h *Handler) FinanceText(c *gin.Context) {
	from, to, ok := window(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"text": h.svc.FinanceText(from, to)}))
}

func (h *Handler) FinancePDF(c *gin.Context) {
	from, to, ok := window(c)
	if !ok {
		return
	}

	pdf, _, err := h.svc.FinancePDF(from, to)
	if err != nil {
		handler.Error(c, err)
		return
	}

	name := fmt.Sprintf("finance-%s-%s.pdf", from.Format(dateLayout), to.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
