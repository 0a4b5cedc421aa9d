package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/model"
)

func samplePatient() *model.Patient {
	return &model.Patient{
		ID:          uuid.New(),
		Name:        "Asha Rao",
		DateOfBirth: time.Date(1988, 4, 2, 0, 0, 0, 0, time.UTC),
		DentalChart: map[string]model.ToothRecord{
			"14": {Condition: model.ToothConditionRootCanal, Notes: "review in 2w"},
		},
		TreatmentPlan: []*model.TreatmentPlanItem{
			{ID: uuid.New(), Procedure: "Root Canal Therapy", Tooth: "14", Cost: 480, Status: model.TreatmentStatusCompleted},
		},
		Prescriptions: []*model.Prescription{
			{ID: uuid.New(), Medication: "Amoxicillin", Dosage: "500mg", Frequency: "TID", Duration: "5 days", Status: model.PrescriptionStatusActive},
		},
		BillingEntries: []*model.BillingEntry{
			{ID: uuid.New(), Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Description: "Root Canal Therapy", Amount: 480, Status: model.BillingStatusPending},
		},
		Notes: []*model.CaseNote{
			{ID: uuid.New(), Category: model.CaseNoteCategoryCase, Text: "Tender to percussion.", CreatedAt: time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestPatientTextAllSections(t *testing.T) {
	text := PatientText("Smile Studio", samplePatient(), AllSections())

	assert.Contains(t, text, "Smile Studio")
	assert.Contains(t, text, "Patient report for Asha Rao")
	assert.Contains(t, text, "#14 root_canal")
	assert.Contains(t, text, "Root Canal Therapy #14 [completed] 480.00")
	assert.Contains(t, text, "Amoxicillin 500mg, TID, 5 days")
	assert.Contains(t, text, "Outstanding balance: 480.00")
	assert.Contains(t, text, "Tender to percussion.")
}

func TestPatientTextOmitsDisabledAndEmptySections(t *testing.T) {
	p := samplePatient()
	text := PatientText("Smile Studio", p, Sections{Billing: true})

	assert.NotContains(t, text, "Dental chart:")
	assert.NotContains(t, text, "Treatment plan:")
	assert.Contains(t, text, "Billing:")

	// Enabled but empty sections are omitted too.
	p.BillingEntries = nil
	text = PatientText("Smile Studio", p, Sections{Billing: true})
	assert.NotContains(t, text, "Billing:")
}

func TestPatientPDFRendersNonEmpty(t *testing.T) {
	pdf, err := PatientPDF("Smile Studio", "+15550111", samplePatient(), AllSections())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestTransactionsPDFRendersNonEmpty(t *testing.T) {
	txns := []*model.FinancialTransaction{
		{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Amount: 480, Date: "2026-08-01"},
		{ID: uuid.New(), Type: model.TransactionTypeExpense, Category: "Supplies", Amount: 90, Date: "2026-08-03"},
	}
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	pdf, err := TransactionsPDF("Smile Studio", txns, from, to)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestTransactionsInWindowFiltersRows(t *testing.T) {
	inside := &model.FinancialTransaction{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Amount: 480, Date: "2024-06-15"}
	txns := []*model.FinancialTransaction{
		{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Amount: 999, Date: "2020-01-01"},
		inside,
		{ID: uuid.New(), Type: model.TransactionTypeExpense, Category: "Supplies", Amount: 50, Date: "not-a-date"},
	}
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	included := transactionsInWindow(txns, from, to)

	require.Len(t, included, 1)
	assert.Same(t, inside, included[0])
}

func TestTransactionsInWindowIsInclusive(t *testing.T) {
	txns := []*model.FinancialTransaction{
		{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Amount: 100, Date: "2024-06-01"},
		{ID: uuid.New(), Type: model.TransactionTypeExpense, Category: "Supplies", Amount: 40, Date: "2024-06-30"},
	}
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.Len(t, transactionsInWindow(txns, from, to), 2)
}

func TestTransactionsTextWindowAndSummary(t *testing.T) {
	txns := []*model.FinancialTransaction{
		{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Description: "RCT", Amount: 480, Date: "2026-08-01"},
		{ID: uuid.New(), Type: model.TransactionTypeExpense, Category: "Supplies", Amount: 90, Date: "2026-08-03"},
		{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Amount: 999, Date: "2026-07-15"},
	}
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	text := TransactionsText("Smile Studio", txns, from, to)

	assert.Contains(t, text, "Finance report 1 Aug 2026 to 31 Aug 2026")
	assert.Contains(t, text, "Treatment (RCT)")
	assert.Contains(t, text, "Supplies")
	assert.NotContains(t, text, "999")
	assert.Contains(t, text, "Net: 390.00")
}

func TestTransactionsXLSX(t *testing.T) {
	txns := []*model.FinancialTransaction{
		{ID: uuid.New(), Type: model.TransactionTypeIncome, Category: "Treatment", Description: "RCT", Amount: 480, Date: "2026-08-01"},
	}

	data, err := TransactionsXLSX(txns)
	require.NoError(t, err)
	// XLSX files are zip archives.
	require.True(t, len(data) > 4)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestBillingXLSX(t *testing.T) {
	data, err := BillingXLSX([]*model.Patient{samplePatient()})
	require.NoError(t, err)
	require.True(t, len(data) > 4)
	assert.Equal(t, "PK", string(data[:2]))
}
