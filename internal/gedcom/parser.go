// Package gedcom reads GEDCOM files into raw individual and family records.
//
// Only the subset needed to build a family graph is interpreted: names, sex,
// family links, events and attributes with their dates and places, notes,
// source citations and the spouse sealing ordinance. Everything else is
// skipped.
package gedcom

import (
	"fmt"
	"io"
	"strings"

	"gimm/internal/genealogy/models"
)

var factTags = map[string]bool{
	// individual events
	"BIRT": true, "CHR": true, "BAPM": true, "DEAT": true, "BURI": true, "CREM": true,
	"ADOP": true, "BARM": true, "BASM": true, "BLES": true, "CHRA": true, "CONF": true,
	"FCOM": true, "ORDN": true, "NATU": true, "EMIG": true, "IMMI": true, "CENS": true,
	"PROB": true, "WILL": true, "GRAD": true, "RETI": true, "EVEN": true,
	// individual attributes
	"CAST": true, "DSCR": true, "EDUC": true, "IDNO": true, "NATI": true, "NCHI": true,
	"NMR": true, "OCCU": true, "PROP": true, "RELI": true, "RESI": true, "SSN": true,
	"TITL": true, "FACT": true,
	// family events
	"ANUL": true, "DIV": true, "DIVF": true, "ENGA": true, "MARB": true, "MARC": true,
	"MARR": true, "MARL": true, "MARS": true,
	// ordinances
	"BAPL": true, "CONL": true, "ENDL": true, "SLGC": true, "SLGS": true,
}

// Parse reads a GEDCOM stream and returns its individuals and families in
// source order.
func Parse(r io.Reader) (*models.RawRecords, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	p := &parser{
		people:   newIDSpace(),
		families: newIDSpace(),
		notes:    make(map[string]string),
		sources:  make(map[string]string),
		records:  make(map[*node]declared),
	}
	if err := p.index(records); err != nil {
		return nil, err
	}

	out := &models.RawRecords{}
	for _, rec := range records {
		switch rec.tag {
		case "INDI":
			out.Individuals = append(out.Individuals, p.individual(rec))
		case "FAM":
			out.Families = append(out.Families, p.family(rec))
		}
	}
	return out, nil
}

type parser struct {
	people   *idSpace
	families *idSpace
	notes    map[string]string
	sources  map[string]string
	records  map[*node]declared
}

// index assigns ids and collects shared NOTE and SOUR records.
func (p *parser) index(records []*node) error {
	var indi, fam []string
	var indiRecs, famRecs []*node
	for _, rec := range records {
		switch rec.tag {
		case "INDI", "FAM":
			if rec.xref == "" {
				return fmt.Errorf("line %d: %s record has no xref", rec.line, rec.tag)
			}
			if rec.tag == "INDI" {
				indi = append(indi, rec.xref)
				indiRecs = append(indiRecs, rec)
			} else {
				fam = append(fam, rec.xref)
				famRecs = append(famRecs, rec)
			}
		case "NOTE":
			if rec.xref != "" {
				p.notes[rec.xref] = rec.value
			}
		case "SOUR":
			if rec.xref != "" {
				title := rec.childValue("TITL")
				if title == "" {
					title = rec.childValue("ABBR")
				}
				p.sources[rec.xref] = title
			}
		}
	}
	for i, d := range p.people.declare(indi) {
		p.records[indiRecs[i]] = d
	}
	for i, d := range p.families.declare(fam) {
		p.records[famRecs[i]] = d
	}
	return nil
}

func (p *parser) individual(rec *node) models.RawIndividual {
	ind := models.RawIndividual{ID: models.IndividualID(p.records[rec].id)}
	nameSeen := false
	for _, c := range rec.children {
		switch c.tag {
		case "NAME":
			if !nameSeen {
				ind.Name = parseName(c)
				nameSeen = true
			}
		case "SEX":
			ind.Sex = strings.TrimSpace(c.value)
		case "FAMC":
			if id, ok := p.familyRef(c.value); ok {
				ind.OriginFamilies = append(ind.OriginFamilies, id)
			}
		case "FAMS":
			if id, ok := p.familyRef(c.value); ok {
				ind.SpouseFamilies = append(ind.SpouseFamilies, id)
			}
		case "NOTE":
			ind.Notes = append(ind.Notes, p.note(c))
		case "SOUR":
			ind.Sources = append(ind.Sources, p.source(c))
		default:
			if factTags[c.tag] {
				ind.Facts = append(ind.Facts, parseFact(c))
			}
		}
	}
	return ind
}

func (p *parser) family(rec *node) models.RawFamily {
	fam := models.RawFamily{
		ID:     p.records[rec].id,
		Number: p.records[rec].number,
	}
	for _, c := range rec.children {
		switch c.tag {
		case "HUSB":
			fam.Husband = p.personRef(c.value)
		case "WIFE":
			fam.Wife = p.personRef(c.value)
		case "CHIL":
			if id := p.personRef(c.value); id.Known() {
				fam.Children = append(fam.Children, id)
			}
		case "NOTE":
			fam.Notes = append(fam.Notes, p.note(c))
		case "SOUR":
			fam.Sources = append(fam.Sources, p.source(c))
		default:
			if !factTags[c.tag] {
				continue
			}
			if c.tag == "SLGS" {
				fam.Sealed = true
			}
			fam.Facts = append(fam.Facts, parseFact(c))
		}
	}
	return fam
}

func (p *parser) personRef(v string) models.IndividualID {
	if !isRef(v) {
		return models.NoIndividual
	}
	return models.IndividualID(p.people.lookup(ref(v)))
}

func (p *parser) familyRef(v string) (int, bool) {
	if !isRef(v) {
		return 0, false
	}
	return p.families.lookup(ref(v)), true
}

func (p *parser) note(n *node) string {
	if isRef(n.value) {
		return p.notes[ref(n.value)]
	}
	return n.value
}

func (p *parser) source(n *node) models.SourceRef {
	src := models.SourceRef{Page: n.childValue("PAGE")}
	if isRef(n.value) {
		src.ID = ref(n.value)
		src.Title = p.sources[src.ID]
	} else {
		src.Title = n.value
	}
	return src
}

// parseName reads "Given /Surname/ Suffix", preferring GIVN and SURN sub-tags.
func parseName(n *node) models.Name {
	var name models.Name
	if before, after, ok := strings.Cut(n.value, "/"); ok {
		surname, suffix, _ := strings.Cut(after, "/")
		name.Given = strings.TrimSpace(before)
		name.Surname = strings.TrimSpace(surname)
		if s := strings.TrimSpace(suffix); s != "" {
			name.Given = strings.TrimSpace(name.Given + " " + s)
		}
	} else {
		name.Given = strings.TrimSpace(n.value)
	}
	if v := strings.TrimSpace(n.childValue("GIVN")); v != "" {
		name.Given = v
	}
	if v := strings.TrimSpace(n.childValue("SURN")); v != "" {
		name.Surname = v
	}
	return name
}

func parseFact(n *node) models.Fact {
	return models.Fact{
		Tag:   n.tag,
		Type:  n.childValue("TYPE"),
		Value: strings.TrimSpace(n.value),
		Date:  n.childValue("DATE"),
		Place: n.childValue("PLAC"),
	}
}

func isRef(v string) bool {
	v = strings.TrimSpace(v)
	return len(v) > 2 && strings.HasPrefix(v, "@") && strings.HasSuffix(v, "@")
}

func ref(v string) string {
	return strings.TrimSpace(v)
}
