package report

import "strings"

// CategoryGeneral is the fallback when no classification rule matches.
const CategoryGeneral = "General"

type classifierRule struct {
	keyword  string
	category string
}

// Rules are scanned in order; the first keyword found in the procedure name
// wins. Order matters: "root canal" must be tried before "crown" sees
// nothing, and specific keywords sit above looser ones.
var classifierRules = []classifierRule{
	{"root canal", "Endodontics"},
	{"pulpotomy", "Endodontics"},
	{"pulp", "Endodontics"},
	{"apicoectomy", "Endodontics"},
	{"filling", "Restorative"},
	{"composite", "Restorative"},
	{"amalgam", "Restorative"},
	{"restoration", "Restorative"},
	{"inlay", "Restorative"},
	{"onlay", "Restorative"},
	{"extraction", "Oral Surgery"},
	{"surgery", "Oral Surgery"},
	{"biopsy", "Oral Surgery"},
	{"implant", "Implantology"},
	{"crown", "Prosthodontics"},
	{"bridge", "Prosthodontics"},
	{"denture", "Prosthodontics"},
	{"veneer", "Cosmetic"},
	{"whitening", "Cosmetic"},
	{"bleach", "Cosmetic"},
	{"cleaning", "Preventive"},
	{"scaling", "Preventive"},
	{"prophylaxis", "Preventive"},
	{"fluoride", "Preventive"},
	{"sealant", "Preventive"},
	{"braces", "Orthodontics"},
	{"aligner", "Orthodontics"},
	{"orthodontic", "Orthodontics"},
	{"gingiv", "Periodontics"},
	{"perio", "Periodontics"},
	{"gum", "Periodontics"},
}

// ClassifyProcedure maps a free-text procedure name to a treatment category
// by case-insensitive substring match.
func ClassifyProcedure(procedure string) string {
	name := strings.ToLower(procedure)
	for _, r := range classifierRules {
		if strings.Contains(name, r.keyword) {
			return r.category
		}
	}
	return CategoryGeneral
}
