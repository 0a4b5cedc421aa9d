package model

// AppState is the aggregate root and the only unit of persistence. Every
// store transition replaces the whole root; untouched branches keep their
// identity so callers can rely on shallow comparison.
type AppState struct {
	ClinicName          string                  `json:"clinicName"`
	ClinicContactNumber string                  `json:"clinicContactNumber"`
	Patients            []*Patient              `json:"patients"`
	Appointments        []*Appointment          `json:"appointments"`
	Transactions        []*FinancialTransaction `json:"transactions"`
	Shortcuts           []*Shortcut             `json:"shortcuts"`
}

// DefaultState returns the state a fresh clinic starts from. Snapshot loading
// merges stored fields onto this, so partial or missing snapshots still
// produce a usable state.
func DefaultState() AppState {
	return AppState{
		ClinicName:          "DentAssist Clinic",
		ClinicContactNumber: "",
		Patients:            []*Patient{},
		Appointments:        []*Appointment{},
		Transactions:        []*FinancialTransaction{},
		Shortcuts:           []*Shortcut{},
	}
}

// UpdateClinicSettingsRequest updates the clinic-level settings.
type UpdateClinicSettingsRequest struct {
	ClinicName          string `json:"clinic_name" binding:"required"`
	ClinicContactNumber string `json:"clinic_contact_number"`
}
