// Package exporter turns stored records into deliverable documents and hands
// them to the outbound channels.
package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentassist/dentsync/internal/email"
	"github.com/dentassist/dentsync/internal/export"
	"github.com/dentassist/dentsync/internal/messaging"
	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/report"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/errors"
)

type Service struct {
	store *store.Store
	email email.Service
}

// NewService wires the exporter. email may be nil when SMTP is not
// configured; email delivery then reports a configuration error.
func NewService(st *store.Store, mail email.Service) *Service {
	return &Service{store: st, email: mail}
}

func (s *Service) patient(id uuid.UUID) (*model.Patient, error) {
	for _, p := range s.store.State().Patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFound("patient", nil)
}

func (s *Service) PatientPDF(patientID uuid.UUID, sec export.Sections) ([]byte, error) {
	p, err := s.patient(patientID)
	if err != nil {
		return nil, err
	}
	state := s.store.State()
	return export.PatientPDF(state.ClinicName, state.ClinicContactNumber, p, sec)
}

func (s *Service) PatientText(patientID uuid.UUID, sec export.Sections) (string, error) {
	p, err := s.patient(patientID)
	if err != nil {
		return "", err
	}
	return export.PatientText(s.store.State().ClinicName, p, sec), nil
}

// PatientWhatsAppLink builds a deep-link carrying the flattened report. The
// phone defaults to the patient's stored contact when none is given.
func (s *Service) PatientWhatsAppLink(patientID uuid.UUID, phone string, sec export.Sections) (string, error) {
	p, err := s.patient(patientID)
	if err != nil {
		return "", err
	}
	if phone == "" {
		phone = p.Contact
	}
	text := export.PatientText(s.store.State().ClinicName, p, sec)
	return messaging.BuildWhatsAppLink(phone, text)
}

// EmailPatientReport sends the plain-text report with the PDF attached.
func (s *Service) EmailPatientReport(ctx context.Context, patientID uuid.UUID, to string, sec export.Sections) error {
	if s.email == nil {
		return errors.Configuration("email delivery is not configured")
	}
	p, err := s.patient(patientID)
	if err != nil {
		return err
	}

	state := s.store.State()
	body := export.PatientText(state.ClinicName, p, sec)
	pdf, err := export.PatientPDF(state.ClinicName, state.ClinicContactNumber, p, sec)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Patient report: %s", p.Name)
	return s.email.SendReport(ctx, to, subject, body, pdf, "patient-report.pdf")
}

func (s *Service) TransactionsXLSX() ([]byte, error) {
	return export.TransactionsXLSX(s.store.State().Transactions)
}

func (s *Service) BillingXLSX() ([]byte, error) {
	return export.BillingXLSX(s.store.State().Patients)
}

// FinanceText flattens the transaction report over an inclusive window.
func (s *Service) FinanceText(from, to time.Time) string {
	state := s.store.State()
	return export.TransactionsText(state.ClinicName, state.Transactions, from, to)
}

// FinancePDF renders the transaction report over an inclusive window,
// together with its balance summary line.
func (s *Service) FinancePDF(from, to time.Time) ([]byte, *report.BalanceSummary, error) {
	txns := s.store.State().Transactions
	pdf, err := export.TransactionsPDF(s.store.State().ClinicName, txns, from, to)
	if err != nil {
		return nil, nil, err
	}
	summary := report.NetBalance(txns, from, to)
	return pdf, &summary, nil
}
