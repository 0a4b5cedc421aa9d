package exporter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/export"
	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/store"
	apperrors "github.com/dentassist/dentsync/pkg/errors"
)

type capturedMail struct {
	to       string
	subject  string
	filename string
	body     string
}

type fakeMailer struct {
	sent []capturedMail
}

func (f *fakeMailer) SendReport(_ context.Context, to, subject, body string, _ []byte, filename string) error {
	f.sent = append(f.sent, capturedMail{to: to, subject: subject, filename: filename, body: body})
	return nil
}

func seededStore() (*store.Store, *model.Patient) {
	st := store.New(model.DefaultState())
	p := &model.Patient{
		ID:      uuid.New(),
		Name:    "Asha Rao",
		Contact: "+14155552671",
		BillingEntries: []*model.BillingEntry{
			{ID: uuid.New(), Description: "Scaling", Amount: 90, Status: model.BillingStatusPending},
		},
	}
	st.Dispatch(store.AddPatient{Patient: p})
	return st, p
}

func TestPatientWhatsAppLinkDefaultsToStoredContact(t *testing.T) {
	st, p := seededStore()
	svc := NewService(st, nil)

	link, err := svc.PatientWhatsAppLink(p.ID, "", export.AllSections())
	require.NoError(t, err)
	assert.Contains(t, link, "wa.me/14155552671")

	link, err = svc.PatientWhatsAppLink(p.ID, "+44 20 7946 0958", export.AllSections())
	require.NoError(t, err)
	assert.Contains(t, link, "wa.me/442079460958")
}

func TestPatientExportsUnknownPatient(t *testing.T) {
	st, _ := seededStore()
	svc := NewService(st, nil)

	_, err := svc.PatientPDF(uuid.New(), export.AllSections())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = svc.PatientText(uuid.New(), export.AllSections())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestEmailPatientReport(t *testing.T) {
	st, p := seededStore()
	mailer := &fakeMailer{}
	svc := NewService(st, mailer)

	require.NoError(t, svc.EmailPatientReport(context.Background(), p.ID, "patient@example.com", export.AllSections()))

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "patient@example.com", sent.to)
	assert.Equal(t, "Patient report: Asha Rao", sent.subject)
	assert.Equal(t, "patient-report.pdf", sent.filename)
	assert.Contains(t, sent.body, "Asha Rao")
}

func TestEmailPatientReportWithoutMailer(t *testing.T) {
	st, p := seededStore()
	svc := NewService(st, nil)

	err := svc.EmailPatientReport(context.Background(), p.ID, "patient@example.com", export.AllSections())
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
}

func TestFinancePDFSummary(t *testing.T) {
	st, _ := seededStore()
	st.Dispatch(store.AddTransaction{Transaction: &model.FinancialTransaction{
		ID: uuid.New(), Type: model.TransactionTypeIncome, Amount: 480, Date: "2026-08-01",
	}})
	st.Dispatch(store.AddTransaction{Transaction: &model.FinancialTransaction{
		ID: uuid.New(), Type: model.TransactionTypeExpense, Amount: 90, Date: "2026-08-03",
	}})
	svc := NewService(st, nil)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	pdf, summary, err := svc.FinancePDF(from, to)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, summary)
	assert.Equal(t, 390.0, summary.Net)
}
