package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	patients := r.Group("/patients")
	{
		patients.GET("", h.List)
		patients.POST("", h.Create)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)

		patients.PUT("/:id/chart", h.SetToothRecord)
		patients.DELETE("/:id/chart/:tooth", h.ClearToothRecord)

		patients.POST("/:id/treatment-plan", h.AddTreatmentPlanItem)
		patients.PUT("/:id/treatment-plan/:itemID", h.UpdateTreatmentPlanItem)
		patients.DELETE("/:id/treatment-plan/:itemID", h.DeleteTreatmentPlanItem)
		patients.POST("/:id/treatment-plan/:itemID/bill", h.ConvertToBilling)

		patients.POST("/:id/prescriptions", h.AddPrescription)
		patients.PUT("/:id/prescriptions/:rxID", h.UpdatePrescription)
		patients.DELETE("/:id/prescriptions/:rxID", h.DeletePrescription)

		patients.POST("/:id/billing", h.AddBillingEntry)
		patients.POST("/:id/billing/:entryID/pay", h.MarkBillingPaid)
		patients.DELETE("/:id/billing/:entryID", h.DeleteBillingEntry)

		patients.POST("/:id/notes", h.AddCaseNote)
		patients.DELETE("/:id/notes/:noteID", h.DeleteCaseNote)

		patients.POST("/:id/documents", h.AddDocument)
		patients.DELETE("/:id/documents/:docID", h.DeleteDocument)
	}
}

func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid "+param))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.svc.ListPatients()))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	patient, err := h.svc.GetPatient(id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient := h.svc.CreatePatient(&req)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.svc.UpdatePatient(id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("patient deleted"))
}

func (h *Handler) SetToothRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.SetToothRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.SetToothRecord(id, &req); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("tooth record updated"))
}

func (h *Handler) ClearToothRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.ClearToothRecord(id, c.Param("tooth")); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("tooth record cleared"))
}

func (h *Handler) AddTreatmentPlanItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.AddTreatmentPlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	item, err := h.svc.AddTreatmentPlanItem(id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(item))
}

func (h *Handler) UpdateTreatmentPlanItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	var req model.UpdateTreatmentPlanItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	item, err := h.svc.UpdateTreatmentPlanItem(id, itemID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(item))
}

func (h *Handler) DeleteTreatmentPlanItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	if err := h.svc.DeleteTreatmentPlanItem(id, itemID); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("treatment plan item deleted"))
}

func (h *Handler) ConvertToBilling(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	entry, err := h.svc.ConvertTreatmentToBilling(id, itemID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

func (h *Handler) AddPrescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.AddPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rx, err := h.svc.AddPrescription(id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rx))
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rxID, ok := pathID(c, "rxID")
	if !ok {
		return
	}

	var req model.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rx, err := h.svc.UpdatePrescription(id, rxID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rx))
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rxID, ok := pathID(c, "rxID")
	if !ok {
		return
	}

	if err := h.svc.DeletePrescription(id, rxID); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("prescription deleted"))
}

func (h *Handler) AddBillingEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.AddBillingEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry, err := h.svc.AddBillingEntry(id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

func (h *Handler) MarkBillingPaid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryID")
	if !ok {
		return
	}

	entry, err := h.svc.MarkBillingPaid(id, entryID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entry))
}

func (h *Handler) DeleteBillingEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathID(c, "entryID")
	if !ok {
		return
	}

	if err := h.svc.DeleteBillingEntry(id, entryID); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("billing entry deleted"))
}

func (h *Handler) AddCaseNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.AddCaseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	note, err := h.svc.AddCaseNote(id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(note))
}

func (h *Handler) DeleteCaseNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteID")
	if !ok {
		return
	}

	if err := h.svc.DeleteCaseNote(id, noteID); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("note deleted"))
}

func (h *Handler) AddDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doc, err := h.svc.AddDocument(id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doc))
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	docID, ok := pathID(c, "docID")
	if !ok {
		return
	}

	if err := h.svc.DeleteDocument(id, docID); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse("document deleted"))
}
