// Package export renders patient and clinic records into downloadable
// documents. Formatters never mutate their inputs and omit empty sections
// instead of erroring.
package export

// Sections selects which owned collections a patient report includes.
type Sections struct {
	Chart         bool `form:"chart" json:"chart"`
	TreatmentPlan bool `form:"treatment_plan" json:"treatment_plan"`
	Prescriptions bool `form:"prescriptions" json:"prescriptions"`
	Billing       bool `form:"billing" json:"billing"`
	Notes         bool `form:"notes" json:"notes"`
}

// AllSections returns the default selection with every section enabled.
func AllSections() Sections {
	return Sections{
		Chart:         true,
		TreatmentPlan: true,
		Prescriptions: true,
		Billing:       true,
		Notes:         true,
	}
}
