package render

import (
	"html/template"
	"strings"

	"gimm/internal/genealogy/models"
)

var funcMap = template.FuncMap{
	"name":      displayName,
	"sortName":  sortName,
	"lifespan":  lifespan,
	"factLabel": factLabel,
	"sexLabel":  sexLabel,
	"surname":   surnameLabel,
}

var factLabels = map[string]string{
	"BIRT": "Birth",
	"CHR":  "Christening",
	"BAPM": "Baptism",
	"DEAT": "Death",
	"BURI": "Burial",
	"CREM": "Cremation",
	"MARR": "Marriage",
	"DIV":  "Divorce",
	"ENGA": "Engagement",
	"RESI": "Residence",
	"OCCU": "Occupation",
	"EDUC": "Education",
	"EMIG": "Emigration",
	"IMMI": "Immigration",
	"NATU": "Naturalization",
	"CENS": "Census",
	"PROB": "Probate",
	"WILL": "Will",
	"GRAD": "Graduation",
	"RETI": "Retirement",
	"RELI": "Religion",
	"TITL": "Title",
	"EVEN": "Event",
	"FACT": "Fact",
}

func displayName(ind *models.Individual) string {
	if ind == nil {
		return "Unknown"
	}
	if ind.Name.IsEmpty() {
		return "(no name)"
	}
	return ind.Name.Display()
}

// sortName renders "Surname, Given" for index listings.
func sortName(ind *models.Individual) string {
	if ind == nil {
		return "Unknown"
	}
	sur := strings.TrimSpace(ind.Name.Surname)
	given := strings.TrimSpace(ind.Name.Given)
	switch {
	case sur == "" && given == "":
		return "(no name)"
	case sur == "":
		return given
	case given == "":
		return sur
	}
	return sur + ", " + given
}

// lifespan renders "(birth - death)" from the first dated birth-like and
// death-like facts, or "" when neither is known.
func lifespan(ind *models.Individual) string {
	if ind == nil {
		return ""
	}
	born := firstDate(ind.Facts, "BIRT", "CHR", "BAPM")
	died := firstDate(ind.Facts, "DEAT", "BURI", "CREM")
	if born == "" && died == "" {
		return ""
	}
	return "(" + born + " - " + died + ")"
}

func firstDate(facts []models.Fact, tags ...string) string {
	for _, tag := range tags {
		for _, f := range facts {
			if f.Tag == tag && f.Date != "" {
				return f.Date
			}
		}
	}
	return ""
}

func factLabel(f models.Fact) string {
	if f.Type != "" {
		return f.Type
	}
	if label, ok := factLabels[f.Tag]; ok {
		return label
	}
	return f.Tag
}

func sexLabel(sex string) string {
	switch strings.ToUpper(sex) {
	case "M":
		return "Male"
	case "F":
		return "Female"
	default:
		return "Unknown"
	}
}

func surnameLabel(s string) string {
	if s == "" {
		return "(no surname)"
	}
	return s
}
