package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dentassist/dentsync/internal/model"
)

const (
	pdfMarginBottom = 20.0
	rowHeight       = 6.0
	headerHeight    = 7.0
)

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	pageH float64
}

func newPDFWriter() *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, pdfMarginBottom)
	pdf.AddPage()
	_, pageH := pdf.GetPageSize()
	return &pdfWriter{pdf: pdf, pageH: pageH}
}

// ensure starts a new page when the remaining vertical space cannot fit the
// next block.
func (w *pdfWriter) ensure(height float64) {
	if w.pdf.GetY()+height > w.pageH-pdfMarginBottom {
		w.pdf.AddPage()
	}
}

func (w *pdfWriter) header(clinicName, clinicContact, title string) {
	w.pdf.SetFont("Helvetica", "B", 16)
	w.pdf.CellFormat(0, 9, clinicName, "", 1, "C", false, 0, "")
	if clinicContact != "" {
		w.pdf.SetFont("Helvetica", "", 9)
		w.pdf.CellFormat(0, 5, clinicContact, "", 1, "C", false, 0, "")
	}
	w.pdf.Ln(2)
	w.pdf.SetFont("Helvetica", "B", 12)
	w.pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	w.pdf.Ln(2)
}

func (w *pdfWriter) sectionTitle(title string) {
	w.ensure(headerHeight + 2*rowHeight)
	w.pdf.SetFont("Helvetica", "B", 11)
	w.pdf.CellFormat(0, headerHeight, title, "B", 1, "L", false, 0, "")
	w.pdf.Ln(1)
}

func (w *pdfWriter) row(cols []string, widths []float64) {
	w.ensure(rowHeight)
	w.pdf.SetFont("Helvetica", "", 9)
	for i, col := range cols {
		w.pdf.CellFormat(widths[i], rowHeight, col, "", 0, "L", false, 0, "")
	}
	w.pdf.Ln(rowHeight)
}

func (w *pdfWriter) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PatientPDF renders a paginated patient report: a header block, then one
// block per included, non-empty section, breaking pages when the remaining
// space is insufficient.
func PatientPDF(clinicName, clinicContact string, p *model.Patient, sec Sections) ([]byte, error) {
	w := newPDFWriter()
	w.header(clinicName, clinicContact, "Patient Report")

	w.pdf.SetFont("Helvetica", "", 10)
	w.row([]string{"Name:", p.Name}, []float64{35, 0})
	w.row([]string{"Date of birth:", p.DateOfBirth.Format("2 Jan 2006")}, []float64{35, 0})
	w.row([]string{"Gender:", p.Gender}, []float64{35, 0})
	if p.Contact != "" {
		w.row([]string{"Contact:", p.Contact}, []float64{35, 0})
	}
	if p.MedicalHistory != "" {
		w.ensure(2 * rowHeight)
		w.pdf.SetFont("Helvetica", "", 9)
		w.pdf.MultiCell(0, 5, "Medical history: "+p.MedicalHistory, "", "L", false)
	}
	w.pdf.Ln(3)

	if sec.Chart && len(p.DentalChart) > 0 {
		w.sectionTitle("Dental Chart")
		teeth := make([]string, 0, len(p.DentalChart))
		for tooth := range p.DentalChart {
			teeth = append(teeth, tooth)
		}
		sort.Strings(teeth)
		for _, tooth := range teeth {
			rec := p.DentalChart[tooth]
			w.row([]string{"#" + tooth, string(rec.Condition), rec.Notes}, []float64{20, 40, 0})
		}
		w.pdf.Ln(3)
	}

	if sec.TreatmentPlan && len(p.TreatmentPlan) > 0 {
		w.sectionTitle("Treatment Plan")
		for _, it := range p.TreatmentPlan {
			tooth := it.Tooth
			if tooth != "" {
				tooth = "#" + tooth
			}
			w.row([]string{it.Procedure, tooth, string(it.Status), fmt.Sprintf("%.2f", it.Cost)}, []float64{80, 25, 40, 0})
		}
		w.pdf.Ln(3)
	}

	if sec.Prescriptions && len(p.Prescriptions) > 0 {
		w.sectionTitle("Prescriptions")
		for _, rx := range p.Prescriptions {
			w.row([]string{rx.Medication, rx.Dosage, rx.Frequency, string(rx.Status)}, []float64{60, 35, 50, 0})
		}
		w.pdf.Ln(3)
	}

	if sec.Billing && len(p.BillingEntries) > 0 {
		w.sectionTitle("Billing")
		for _, b := range p.BillingEntries {
			w.row([]string{b.Date.Format("2006-01-02"), b.Description, fmt.Sprintf("%.2f", b.Amount), string(b.Status)}, []float64{30, 95, 30, 0})
		}
		w.pdf.Ln(3)
	}

	if sec.Notes && len(p.Notes) > 0 {
		w.sectionTitle("Notes")
		for _, n := range p.Notes {
			w.ensure(2 * rowHeight)
			w.pdf.SetFont("Helvetica", "", 9)
			w.pdf.MultiCell(0, 5, n.CreatedAt.Format("2006-01-02")+"  "+n.Text, "", "L", false)
		}
	}

	return w.bytes()
}

// TransactionsPDF renders the clinic finance report over an inclusive
// window. Rows follow the same window and malformed-date rules as the
// aggregators, so the report never lists a transaction its totals exclude.
func TransactionsPDF(clinicName string, txns []*model.FinancialTransaction, from, to time.Time) ([]byte, error) {
	w := newPDFWriter()
	title := fmt.Sprintf("Financial Report  %s - %s", from.Format("2 Jan 2006"), to.Format("2 Jan 2006"))
	w.header(clinicName, "", title)

	included := transactionsInWindow(txns, from, to)
	if len(included) > 0 {
		w.sectionTitle("Transactions")
		for _, t := range included {
			w.row([]string{t.Date, string(t.Type), t.Category, t.Description, fmt.Sprintf("%.2f", t.Amount)}, []float64{25, 22, 35, 75, 0})
		}
	}

	return w.bytes()
}
