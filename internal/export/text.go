package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/report"
)

// PatientText flattens a patient report into a plain-text message suitable
// for a messaging deep-link. Empty sections are omitted.
func PatientText(clinicName string, p *model.Patient, sec Sections) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nPatient report for %s\n", clinicName, p.Name)
	fmt.Fprintf(&b, "DOB: %s\n", p.DateOfBirth.Format("2 Jan 2006"))

	if sec.Chart && len(p.DentalChart) > 0 {
		b.WriteString("\nDental chart:\n")
		teeth := make([]string, 0, len(p.DentalChart))
		for tooth := range p.DentalChart {
			teeth = append(teeth, tooth)
		}
		sort.Strings(teeth)
		for _, tooth := range teeth {
			rec := p.DentalChart[tooth]
			fmt.Fprintf(&b, "  #%s %s", tooth, rec.Condition)
			if rec.Notes != "" {
				fmt.Fprintf(&b, " (%s)", rec.Notes)
			}
			b.WriteString("\n")
		}
	}

	if sec.TreatmentPlan && len(p.TreatmentPlan) > 0 {
		b.WriteString("\nTreatment plan:\n")
		for _, it := range p.TreatmentPlan {
			fmt.Fprintf(&b, "  %s", it.Procedure)
			if it.Tooth != "" {
				fmt.Fprintf(&b, " #%s", it.Tooth)
			}
			fmt.Fprintf(&b, " [%s] %.2f\n", it.Status, it.Cost)
		}
	}

	if sec.Prescriptions && len(p.Prescriptions) > 0 {
		b.WriteString("\nPrescriptions:\n")
		for _, rx := range p.Prescriptions {
			fmt.Fprintf(&b, "  %s %s, %s", rx.Medication, rx.Dosage, rx.Frequency)
			if rx.Duration != "" {
				fmt.Fprintf(&b, ", %s", rx.Duration)
			}
			b.WriteString("\n")
		}
	}

	if sec.Billing && len(p.BillingEntries) > 0 {
		b.WriteString("\nBilling:\n")
		for _, e := range p.BillingEntries {
			fmt.Fprintf(&b, "  %s %s %.2f [%s]\n", e.Date.Format("2006-01-02"), e.Description, e.Amount, e.Status)
		}
		fmt.Fprintf(&b, "Outstanding balance: %.2f\n", report.OutstandingBalance(p.BillingEntries))
	}

	if sec.Notes && len(p.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, n := range p.Notes {
			fmt.Fprintf(&b, "  %s %s\n", n.CreatedAt.Format("2006-01-02"), n.Text)
		}
	}

	return b.String()
}

// transactionsInWindow keeps transactions whose date falls in the inclusive
// [from, to] range. Unparseable dates are skipped, matching the aggregators.
func transactionsInWindow(txns []*model.FinancialTransaction, from, to time.Time) []*model.FinancialTransaction {
	included := make([]*model.FinancialTransaction, 0, len(txns))
	for _, t := range txns {
		d, err := time.Parse("2006-01-02", t.Date)
		if err != nil || d.Before(from) || d.After(to) {
			continue
		}
		included = append(included, t)
	}
	return included
}

// TransactionsText flattens the finance report over an inclusive window.
func TransactionsText(clinicName string, txns []*model.FinancialTransaction, from, to time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nFinance report %s to %s\n\n",
		clinicName, from.Format("2 Jan 2006"), to.Format("2 Jan 2006"))

	for _, t := range transactionsInWindow(txns, from, to) {
		fmt.Fprintf(&b, "%s  %-7s  %s", t.Date, t.Type, t.Category)
		if t.Description != "" {
			fmt.Fprintf(&b, " (%s)", t.Description)
		}
		fmt.Fprintf(&b, "  %.2f\n", t.Amount)
	}

	s := report.NetBalance(txns, from, to)
	fmt.Fprintf(&b, "\nIncome: %.2f\nExpense: %.2f\nNet: %.2f\n", s.Income, s.Expense, s.Net)
	return b.String()
}
