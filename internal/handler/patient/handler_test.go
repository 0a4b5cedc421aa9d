package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/handler"
	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/service/clinic"
	"github.com/dentassist/dentsync/internal/store"
)

func setupRouter() (*gin.Engine, *clinic.Service) {
	gin.SetMode(gin.TestMode)
	svc := clinic.NewService(store.New(model.DefaultState()), nil)
	engine := gin.New()
	group := engine.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(group)
	return engine, svc
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func TestCreateAndGetPatientEndpoint(t *testing.T) {
	engine, _ := setupRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", gin.H{
		"name":          "Asha Rao",
		"date_of_birth": "1988-04-02T00:00:00Z",
		"gender":        "female",
		"contact":       "+14155552671",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Patient
	decodeData(t, w, &created)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/patients/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Patient
	decodeData(t, w, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Asha Rao", got.Name)
}

func TestCreatePatientValidation(t *testing.T) {
	engine, _ := setupRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", gin.H{"name": "No DOB"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestGetPatientNotFound(t *testing.T) {
	engine, _ := setupRouter()

	w := doJSON(t, engine, http.MethodGet, "/api/v1/patients/6e1a2f4e-6a8e-4c7a-9f41-baf2c24ad9aa", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTreatmentPlanBillingFlowEndpoint(t *testing.T) {
	engine, svc := setupRouter()
	p := svc.CreatePatient(&model.CreatePatientRequest{
		Name: "Asha Rao", Gender: "female",
	})

	w := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/patients/%s/treatment-plan", p.ID), gin.H{
		"procedure": "Root Canal Therapy",
		"tooth":     "14",
		"cost":      480,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item model.TreatmentPlanItem
	decodeData(t, w, &item)

	// Billing an item that isn't completed fails.
	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/patients/%s/treatment-plan/%s/bill", p.ID, item.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/patients/%s/treatment-plan/%s", p.ID, item.ID), gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/patients/%s/treatment-plan/%s/bill", p.ID, item.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var entry model.BillingEntry
	decodeData(t, w, &entry)
	assert.Equal(t, model.BillingStatusPending, entry.Status)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/patients/%s/billing/%s/pay", p.ID, entry.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var paid model.BillingEntry
	decodeData(t, w, &paid)
	assert.Equal(t, model.BillingStatusPaid, paid.Status)
}

func TestDeletePatientEndpoint(t *testing.T) {
	engine, svc := setupRouter()
	p := svc.CreatePatient(&model.CreatePatientRequest{Name: "Asha Rao", Gender: "female"})

	w := doJSON(t, engine, http.MethodDelete, "/api/v1/patients/"+p.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodDelete, "/api/v1/patients/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
