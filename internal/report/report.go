// Package report computes derived views over the clinic state. Everything
// here is a pure function of its inputs: identical collections produce
// identical output regardless of call order, and inputs are never mutated.
package report

import (
	"sort"
	"time"

	"github.com/dentassist/dentsync/internal/model"
)

const dateLayout = "2006-01-02"

// parseDate reads a stored transaction date. Malformed values are excluded
// from aggregation rather than failing the whole computation.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// OutstandingBalance sums a patient's pending billing entries.
func OutstandingBalance(entries []*model.BillingEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Status == model.BillingStatusPending {
			total += e.Amount
		}
	}
	return total
}

// ClinicOutstandingBalance sums pending billing across all patients.
func ClinicOutstandingBalance(patients []*model.Patient) float64 {
	var total float64
	for _, p := range patients {
		total += OutstandingBalance(p.BillingEntries)
	}
	return total
}

// BalanceSummary is the income/expense breakdown over a window.
type BalanceSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// NetBalance sums income minus expense for transactions whose date falls in
// the inclusive [from, to] range. Transactions with unparseable dates are
// skipped.
func NetBalance(txns []*model.FinancialTransaction, from, to time.Time) BalanceSummary {
	var s BalanceSummary
	for _, t := range txns {
		d, ok := parseDate(t.Date)
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		switch t.Type {
		case model.TransactionTypeIncome:
			s.Income += t.Amount
		case model.TransactionTypeExpense:
			s.Expense += t.Amount
		}
	}
	s.Net = s.Income - s.Expense
	return s
}

// MonthBucket is one calendar month of the rollup.
type MonthBucket struct {
	Month   time.Time `json:"month"`
	Label   string    `json:"label"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
}

// MonthlyRollup buckets transactions into the trailing N calendar months
// ending at ref's month, in chronological order. Months without transactions
// appear with zero income and expense. Month boundaries are inclusive on both
// ends.
func MonthlyRollup(txns []*model.FinancialTransaction, months int, ref time.Time) []MonthBucket {
	if months <= 0 {
		return []MonthBucket{}
	}

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	buckets := make([]MonthBucket, months)
	for i := range buckets {
		m := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{Month: m, Label: m.Format("Jan 2006")}
	}

	for _, t := range txns {
		d, ok := parseDate(t.Date)
		if !ok {
			continue
		}
		idx := (d.Year()-first.Year())*12 + int(d.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}
		switch t.Type {
		case model.TransactionTypeIncome:
			buckets[idx].Income += t.Amount
		case model.TransactionTypeExpense:
			buckets[idx].Expense += t.Amount
		}
	}
	return buckets
}

// CategoryCount is one bar of the procedure histogram.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ProcedureHistogram classifies completed treatment-plan items across all
// patients and counts them per category, sorted by descending frequency with
// a stable alphabetical tie-break.
func ProcedureHistogram(patients []*model.Patient) []CategoryCount {
	counts := make(map[string]int)
	for _, p := range patients {
		for _, it := range p.TreatmentPlan {
			if it.Status != model.TreatmentStatusCompleted {
				continue
			}
			counts[ClassifyProcedure(it.Procedure)]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		result = append(result, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result
}
