package models

// RawIndividual is a person record as produced by the record source, before
// consolidation. OriginFamilies and SpouseFamilies hold raw family ids in
// source order.
type RawIndividual struct {
	ID             IndividualID
	Name           Name
	Sex            string
	OriginFamilies []int
	SpouseFamilies []int
	Facts          []Fact
	Notes          []string
	Sources        []SourceRef
}

// RawFamily is a union record as produced by the record source. Several raw
// families may describe the same (husband, wife) union.
type RawFamily struct {
	ID int
	// Number is the record's own sequence number; zero when the source has none.
	Number   int
	Husband  IndividualID
	Wife     IndividualID
	Children []IndividualID
	Facts    []Fact
	Notes    []string
	Sources  []SourceRef
	Sealed   bool
}

// Key returns the consolidation key of the record.
func (f RawFamily) Key() FamilyKey {
	return FamilyKey{Father: f.Husband, Mother: f.Wife}
}

// RawRecords is the full output of a record source.
type RawRecords struct {
	Individuals []RawIndividual
	Families    []RawFamily
}
